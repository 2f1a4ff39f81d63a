package card

import (
	"math/rand"

	"github.com/ratel-online/landlord/consts"
)

type Deck []Card

func NewDeck() Deck {
	deck := make(Deck, 0, consts.DeckSize)
	for rank := Rank3; rank <= Rank2; rank++ {
		for _, suit := range Suits {
			deck = append(deck, New(rank, suit))
		}
	}
	deck = append(deck, New(RankSmallJoker, Joker), New(RankBigJoker, Joker))
	if err := deck.Validate(); err != nil {
		panic(err)
	}
	return deck
}

// Validate checks the fixed composition: 13 ranks in 4 suits plus the two jokers, no duplicates.
func (d Deck) Validate() error {
	if len(d) != consts.DeckSize {
		return consts.ErrorsDeckInvalid
	}
	seen := make(map[Card]bool, len(d))
	for _, c := range d {
		if seen[c] || !c.Rank.Valid() {
			return consts.ErrorsDeckInvalid
		}
		if c.Rank.IsJoker() != (c.Suit == Joker) {
			return consts.ErrorsDeckInvalid
		}
		seen[c] = true
	}
	return nil
}

// Deal shuffles a copy of the deck and splits it into three sorted hands and the sorted bottom cards.
func Deal(deck Deck, rnd *rand.Rand) ([consts.Seats][]Card, []Card) {
	if len(deck) != consts.DeckSize {
		panic(consts.ErrorsDeckInvalid)
	}
	cards := make([]Card, len(deck))
	copy(cards, deck)
	shuffleCards(cards, rnd)

	var hands [consts.Seats][]Card
	for i := range hands {
		hand := make([]Card, consts.HandSize)
		copy(hand, cards[i*consts.HandSize:(i+1)*consts.HandSize])
		Sort(hand)
		hands[i] = hand
	}
	bottom := make([]Card, consts.BottomSize)
	copy(bottom, cards[consts.Seats*consts.HandSize:])
	Sort(bottom)
	return hands, bottom
}

func shuffleCards(cards []Card, rnd *rand.Rand) {
	shuffle := rand.Shuffle
	if rnd != nil {
		shuffle = rnd.Shuffle
	}
	shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
}
