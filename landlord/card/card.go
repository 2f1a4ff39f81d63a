package card

import (
	"fmt"
	"sort"
	"strings"
)

type Rank int

const (
	Rank3 Rank = iota + 3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
	Rank2
	RankSmallJoker
	RankBigJoker
)

var rankNames = map[Rank]string{
	Rank3: "3", Rank4: "4", Rank5: "5", Rank6: "6", Rank7: "7",
	Rank8: "8", Rank9: "9", Rank10: "10", RankJ: "J", RankQ: "Q",
	RankK: "K", RankA: "A", Rank2: "2",
	RankSmallJoker: "小王", RankBigJoker: "大王",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

func (r Rank) Valid() bool {
	return r >= Rank3 && r <= RankBigJoker
}

func (r Rank) IsJoker() bool {
	return r == RankSmallJoker || r == RankBigJoker
}

// Chainable reports whether the rank may appear as a unit of a straight, pair straight or airplane.
func (r Rank) Chainable() bool {
	return r >= Rank3 && r <= RankA
}

type Suit string

const (
	Spade   Suit = "♠"
	Heart   Suit = "♥"
	Diamond Suit = "♦"
	Club    Suit = "♣"
	Joker   Suit = "🃏"
)

var Suits = []Suit{Spade, Heart, Diamond, Club}

func (s Suit) Red() bool {
	return s == Heart || s == Diamond
}

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func New(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

func (c Card) Less(other Card) bool {
	return c.Rank < other.Rank
}

func (c Card) String() string {
	if c.Rank.IsJoker() {
		return c.Rank.String()
	}
	return string(c.Suit) + c.Rank.String()
}

// Sort orders cards by rank ascending. Suit keeps the order stable inside a rank group.
func Sort(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Rank != cards[j].Rank {
			return cards[i].Rank < cards[j].Rank
		}
		return suitOrder(cards[i].Suit) < suitOrder(cards[j].Suit)
	})
}

func Sorted(cards []Card) []Card {
	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	Sort(sorted)
	return sorted
}

func suitOrder(s Suit) int {
	for i, suit := range Suits {
		if suit == s {
			return i
		}
	}
	return len(Suits)
}

// Counts returns how many cards of each rank are present.
func Counts(cards []Card) map[Rank]int {
	counts := make(map[Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

func Join(cards []Card) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}

// Parse reads a card written the way String prints it, e.g. "♠A", "♥10" or "大王".
func Parse(text string) (Card, error) {
	text = strings.TrimSpace(text)
	switch text {
	case RankSmallJoker.String():
		return New(RankSmallJoker, Joker), nil
	case RankBigJoker.String():
		return New(RankBigJoker, Joker), nil
	}
	for _, suit := range Suits {
		if !strings.HasPrefix(text, string(suit)) {
			continue
		}
		name := strings.ToUpper(strings.TrimPrefix(text, string(suit)))
		for rank := Rank3; rank <= Rank2; rank++ {
			if rank.String() == name {
				return New(rank, suit), nil
			}
		}
		return Card{}, fmt.Errorf("invalid rank in card '%s'", text)
	}
	return Card{}, fmt.Errorf("invalid card '%s'", text)
}
