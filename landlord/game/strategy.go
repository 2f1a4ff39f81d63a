package game

import (
	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/rule"
)

// Strategy is a decision provider for one seat. Out of range bids are coerced and illegal plays
// degrade to a pass, so implementations never need to report errors.
type Strategy interface {
	// DecideBid returns 0 for no bid, otherwise 1 to 3.
	DecideBid(view View) int
	// DecidePlay returns the cards to play, or nil to pass. Passing while the table is open
	// breaks the contract and is resolved by the open table policy.
	DecidePlay(view View) []card.Card
}

// View is what a seat is allowed to see when asked for a decision. It is a copy, changing it has no effect.
type View struct {
	Seat  int
	Name  string
	Role  Role
	Hand  []card.Card
	Phase consts.Phase
	// Bottom is only filled in for the landlord.
	Bottom []card.Card

	HandSizes [consts.Seats]int
	Roles     [consts.Seats]Role
	Landlord  int

	Bids          []Bid
	HighestBid    int
	HighestBidder int

	Incumbent     *rule.Hand
	IncumbentSeat int
	BombCount     int
	History       []Play
}

// Open reports whether the seat may lead any shape.
func (v View) Open() bool {
	return v.Incumbent == nil
}

// OpenTablePolicy picks the cards a seat plays when its provider passed, or offered an illegal play,
// while the table was open.
type OpenTablePolicy func(view View) []card.Card

// LowestCard leads the lowest card in hand.
func LowestCard(view View) []card.Card {
	if len(view.Hand) == 0 {
		return nil
	}
	lowest := view.Hand[0]
	for _, c := range view.Hand[1:] {
		if c.Less(lowest) {
			lowest = c
		}
	}
	return []card.Card{lowest}
}
