package event

import (
	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/rule"
)

type Action string

const (
	ActionPhase    Action = "phase"
	ActionBid      Action = "bid"
	ActionLandlord Action = "landlord"
	ActionPlay     Action = "play"
	ActionPass     Action = "pass"
	ActionSettle   Action = "settle"
)

// NoSeat marks events that do not belong to a seat.
const NoSeat = -1

// Event is one committed state transition. The concrete types below are the only implementations.
type Event interface {
	Action() Action
	Phase() consts.Phase
	Seat() int
}

type Header struct {
	At     consts.Phase
	Player int
}

func (h Header) Phase() consts.Phase {
	return h.At
}

func (h Header) Seat() int {
	return h.Player
}

type PhaseChanged struct {
	Header
	From consts.Phase
}

func (PhaseChanged) Action() Action { return ActionPhase }

type BidPlaced struct {
	Header
	Value int
	// Requested is the raw value before coercion.
	Requested int
}

func (BidPlaced) Action() Action { return ActionBid }

type LandlordAssigned struct {
	Header
	Bid    int
	Bottom []card.Card
	Forced bool
}

func (LandlordAssigned) Action() Action { return ActionLandlord }

type HandPlayed struct {
	Header
	Hand      rule.Hand
	Remaining int
}

func (HandPlayed) Action() Action { return ActionPlay }

type Passed struct {
	Header
	// Implicit is set when an illegal play was degraded to a pass.
	Implicit bool
}

func (Passed) Action() Action { return ActionPass }

type RoundSettled struct {
	Header
	Winner     int
	Landlord   int
	Spring     bool
	AntiSpring bool
	BombCount  int
	Multiplier int
	Deltas     [consts.Seats]int
	Scores     [consts.Seats]int
}

func (RoundSettled) Action() Action { return ActionSettle }

func (e RoundSettled) LandlordWon() bool {
	return e.Winner == e.Landlord
}
