package rule

import (
	"fmt"

	"github.com/ratel-online/landlord/landlord/card"
)

// Hand is a classified play.
type Hand struct {
	Kind  Kind
	Cards []card.Card
	// MainRank is the comparison key: the highest base unit for chains, the triple or quad rank for kicker shapes.
	MainRank card.Rank
	// ChainLength counts consecutive base units, 1 for non-chain shapes.
	ChainLength int
}

func (h Hand) IsBombLike() bool {
	return h.Kind.BombLike()
}

// Clone returns the hand with its own card slice.
func (h Hand) Clone() Hand {
	h.Cards = append([]card.Card(nil), h.Cards...)
	return h
}

func (h Hand) Size() int {
	return len(h.Cards)
}

func (h Hand) String() string {
	return fmt.Sprintf("[%s] %s", h.Kind.DisplayName(), card.Join(h.Cards))
}
