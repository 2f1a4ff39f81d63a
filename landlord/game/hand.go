package game

import (
	"github.com/ratel-online/landlord/landlord/card"
)

// Hand is the mutable multiset of cards a seat holds, kept sorted by rank.
type Hand struct {
	cards []card.Card
}

func NewHand() *Hand {
	return &Hand{cards: make([]card.Card, 0, 20)}
}

func (h *Hand) AddCards(cards []card.Card) {
	h.cards = append(h.cards, cards...)
	card.Sort(h.cards)
}

func (h *Hand) Cards() []card.Card {
	cards := make([]card.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

// Contains reports whether every offered card is held, counting duplicates.
func (h *Hand) Contains(cards []card.Card) bool {
	held := make(map[card.Card]int, len(h.cards))
	for _, c := range h.cards {
		held[c]++
	}
	for _, c := range cards {
		if held[c] == 0 {
			return false
		}
		held[c]--
	}
	return true
}

// RemoveCards removes one copy of each card. Cards that are not held are ignored.
func (h *Hand) RemoveCards(cards []card.Card) {
	for _, c := range cards {
		h.removeCard(c)
	}
}

func (h *Hand) removeCard(c card.Card) {
	for index, cardInHand := range h.cards {
		if cardInHand == c {
			h.cards = append(h.cards[:index], h.cards[index+1:]...)
			return
		}
	}
}

func (h *Hand) Clear() {
	h.cards = h.cards[:0]
}

func (h *Hand) Empty() bool {
	return len(h.cards) == 0
}

func (h *Hand) Size() int {
	return len(h.cards)
}
