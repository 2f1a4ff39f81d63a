package game

import (
	"github.com/google/uuid"
	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/landlord/event"
	"github.com/ratel-online/landlord/rule"
)

type Bid struct {
	Seat  int
	Value int
}

type Play struct {
	Seat int
	Hand rule.Hand
}

// State is the single source of truth for one round. Only the controller mutates it, a new round
// gets a new State, and once Phase is finished it is a read-only snapshot.
type State struct {
	ID     string
	Phase  consts.Phase
	Bottom []card.Card

	FirstBidder   int
	Bidder        int
	Bids          []Bid
	HighestBid    int
	HighestBidder int
	Forced        bool

	Landlord      int
	Turn          int
	Incumbent     *rule.Hand
	IncumbentSeat int
	Passes        int
	BombCount     int
	History       []Play

	Winner     int
	Spring     bool
	AntiSpring bool
	Multiplier int
	Roles      [consts.Seats]Role
	Deltas     [consts.Seats]int
	Scores     [consts.Seats]int

	Events []event.Event
}

func newState() *State {
	return &State{
		ID:            uuid.NewString(),
		Phase:         consts.PhaseIdle,
		HighestBidder: event.NoSeat,
		Landlord:      event.NoSeat,
		IncumbentSeat: event.NoSeat,
		Winner:        event.NoSeat,
		Bids:          make([]Bid, 0, consts.Seats),
		History:       make([]Play, 0, 32),
		Events:        make([]event.Event, 0, 64),
	}
}

// Open reports whether the seat to act may lead: nothing is on the table, or both other seats passed.
func (s *State) Open() bool {
	return s.Incumbent == nil || s.Passes >= consts.OpenAfterPasses
}

func (s *State) Finished() bool {
	return s.Phase == consts.PhaseFinished
}

// Result is the settled outcome of a finished round.
type Result struct {
	RoundID    string
	Winner     int
	Landlord   int
	HighestBid int
	Forced     bool
	BombCount  int
	Spring     bool
	AntiSpring bool
	Multiplier int
	Roles      [consts.Seats]Role
	Deltas     [consts.Seats]int
	Scores     [consts.Seats]int
}

func (r Result) LandlordWon() bool {
	return r.Winner == r.Landlord
}

func (s *State) Result() (Result, error) {
	if !s.Finished() {
		return Result{}, consts.ErrorsRoundUnfinished
	}
	return Result{
		RoundID:    s.ID,
		Winner:     s.Winner,
		Landlord:   s.Landlord,
		HighestBid: s.HighestBid,
		Forced:     s.Forced,
		BombCount:  s.BombCount,
		Spring:     s.Spring,
		AntiSpring: s.AntiSpring,
		Multiplier: s.Multiplier,
		Roles:      s.Roles,
		Deltas:     s.Deltas,
		Scores:     s.Scores,
	}, nil
}
