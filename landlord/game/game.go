package game

import (
	"math/rand"
	"time"

	"github.com/ratel-online/core/log"
	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/landlord/event"
	"github.com/ratel-online/landlord/rule"
)

var seats = []int{0, 1, 2}

type Option func(g *Game)

// WithRand makes shuffling and the first bidder reproducible.
func WithRand(rnd *rand.Rand) Option {
	return func(g *Game) {
		if rnd != nil {
			g.rnd = rnd
		}
	}
}

func WithListener(listener event.Listener) Option {
	return func(g *Game) {
		if listener != nil {
			g.bus.Subscribe(listener)
		}
	}
}

// WithOpenTablePolicy replaces LowestCard as the fallback for seats that pass while leading.
func WithOpenTablePolicy(policy OpenTablePolicy) Option {
	return func(g *Game) {
		if policy != nil {
			g.policy = policy
		}
	}
}

// Game is the turn controller. It is not safe for concurrent use, one goroutine drives a table.
type Game struct {
	players    [consts.Seats]*Player
	strategies [consts.Seats]Strategy
	rnd        *rand.Rand
	bus        *event.Bus
	policy     OpenTablePolicy
	state      *State
	turns      *Cycler
}

func New(names []string, strategies []Strategy, opts ...Option) (*Game, error) {
	if len(names) != consts.Seats || len(strategies) != consts.Seats {
		return nil, consts.ErrorsSeatsInvalid
	}
	g := &Game{
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		bus:    event.NewBus(),
		policy: LowestCard,
		state:  newState(),
	}
	for seat := range seats {
		if strategies[seat] == nil {
			return nil, consts.ErrorsSeatsInvalid
		}
		g.players[seat] = NewPlayer(seat, names[seat])
		g.strategies[seat] = strategies[seat]
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Game) Subscribe(listener event.Listener) {
	g.bus.Subscribe(listener)
}

// State returns the current round. Finished rounds are never touched again.
func (g *Game) State() *State {
	return g.state
}

func (g *Game) Players() []*Player {
	players := make([]*Player, len(g.players))
	copy(players, g.players[:])
	return players
}

func (g *Game) Player(seat int) (*Player, error) {
	if seat < 0 || seat >= consts.Seats {
		return nil, consts.ErrorsSeatInvalid
	}
	return g.players[seat], nil
}

func (g *Game) ResetScores() {
	for _, player := range g.players {
		player.ResetScore()
	}
}

func (g *Game) emit(e event.Event) {
	g.state.Events = append(g.state.Events, e)
	g.bus.Emit(e)
}

// advance moves the round one phase forward. Skipping or going back is refused.
func (g *Game) advance(to consts.Phase) error {
	from := g.state.Phase
	if to != from+1 {
		return consts.ErrorsPhaseInvalid
	}
	g.state.Phase = to
	g.emit(event.PhaseChanged{Header: event.Header{At: to, Player: event.NoSeat}, From: from})
	return nil
}

// Deal starts a new round on a fresh State and leaves it in the bidding phase.
func (g *Game) Deal() error {
	if g.state.Phase == consts.PhasePlaying {
		return consts.ErrorsRoundUnfinished
	}
	g.state = newState()
	for _, player := range g.players {
		player.resetForRound()
	}
	if err := g.advance(consts.PhaseDealing); err != nil {
		return err
	}
	hands, bottom := card.Deal(card.NewDeck(), g.rnd)
	for seat, player := range g.players {
		player.hand.AddCards(hands[seat])
	}
	g.state.Bottom = bottom
	g.state.FirstBidder = g.rnd.Intn(consts.Seats)
	g.state.Bidder = g.state.FirstBidder
	return g.advance(consts.PhaseBidding)
}

func coerceBid(requested, highest int) int {
	value := requested
	if value <= consts.MinBid {
		return consts.MinBid
	}
	if value > consts.MaxBid {
		value = consts.MaxBid
	}
	if value <= highest {
		return consts.MinBid
	}
	return value
}

// RunBidding asks each seat once for a bid, starting at the first bidder, and assigns the landlord.
// It reports false when nobody bid, the round then stays in the bidding phase for the caller to
// redeal or force a landlord.
func (g *Game) RunBidding() (bool, error) {
	if g.state.Phase != consts.PhaseBidding || len(g.state.Bids) > 0 {
		return false, consts.ErrorsPhaseInvalid
	}
	cursor := NewCycler(seats, g.state.FirstBidder)
	for i := 0; i < consts.Seats; i++ {
		seat := cursor.Current()
		g.state.Bidder = seat
		requested := g.strategies[seat].DecideBid(g.view(seat))
		value := coerceBid(requested, g.state.HighestBid)
		g.state.Bids = append(g.state.Bids, Bid{Seat: seat, Value: value})
		if value > g.state.HighestBid {
			g.state.HighestBid = value
			g.state.HighestBidder = seat
		}
		g.emit(event.BidPlaced{
			Header:    event.Header{At: consts.PhaseBidding, Player: seat},
			Value:     value,
			Requested: requested,
		})
		if value == consts.MaxBid {
			break
		}
		cursor.Next()
	}
	if g.state.HighestBidder == event.NoSeat {
		log.Infof("round %s: nobody bid for the landlord\n", g.state.ID)
		return false, nil
	}
	return true, g.assignLandlord(g.state.HighestBidder, g.state.HighestBid)
}

// assignLandlord hands the bottom cards to the seat and starts the playing phase with it.
func (g *Game) assignLandlord(seat, bid int) error {
	if g.state.Phase != consts.PhaseBidding {
		return consts.ErrorsPhaseInvalid
	}
	if seat < 0 || seat >= consts.Seats {
		return consts.ErrorsSeatInvalid
	}
	if bid < consts.ForcedBid || bid > consts.MaxBid {
		return consts.ErrorsBidInvalid
	}
	g.state.HighestBid = bid
	g.state.HighestBidder = seat
	g.state.Landlord = seat
	for s, player := range g.players {
		if s == seat {
			player.Role = RoleLandlord
			player.hand.AddCards(g.state.Bottom)
		} else {
			player.Role = RoleFarmer
		}
		g.state.Roles[s] = player.Role
	}
	g.turns = NewCycler(seats, seat)
	g.state.Turn = seat
	bottom := make([]card.Card, len(g.state.Bottom))
	copy(bottom, g.state.Bottom)
	g.emit(event.LandlordAssigned{
		Header: event.Header{At: consts.PhaseBidding, Player: seat},
		Bid:    bid,
		Bottom: bottom,
		Forced: g.state.Forced,
	})
	log.Infof("round %s: %s is the landlord at %d\n", g.state.ID, g.players[seat].Name, bid)
	return g.advance(consts.PhasePlaying)
}

// ForceLandlord makes the seat landlord at the lowest bid after every seat declined.
func (g *Game) ForceLandlord(seat int) error {
	if g.state.Phase != consts.PhaseBidding || len(g.state.Bids) < consts.Seats || g.state.HighestBidder != event.NoSeat {
		return consts.ErrorsPhaseInvalid
	}
	if seat < 0 || seat >= consts.Seats {
		return consts.ErrorsSeatInvalid
	}
	g.state.Forced = true
	return g.assignLandlord(seat, consts.ForcedBid)
}

// legal runs the play pipeline: held, classified, and beating the incumbent unless the table is open.
func (g *Game) legal(seat int, offered []card.Card, open bool) (rule.Hand, bool) {
	if len(offered) == 0 || !g.players[seat].Holds(offered) {
		return rule.Hand{}, false
	}
	hand, ok := rule.Classify(offered)
	if !ok {
		return rule.Hand{}, false
	}
	if !open && !rule.Beats(hand, *g.state.Incumbent) {
		return rule.Hand{}, false
	}
	return hand, true
}

// PlayTurn asks the seat to act once. Illegal offers count as passes, a seat leading the table
// always ends up playing through the open table policy.
func (g *Game) PlayTurn() error {
	if g.state.Phase != consts.PhasePlaying {
		return consts.ErrorsPhaseInvalid
	}
	seat := g.state.Turn
	if g.state.Open() {
		g.state.Incumbent = nil
		g.state.Passes = 0
	}
	open := g.state.Incumbent == nil
	view := g.view(seat)
	offered := g.strategies[seat].DecidePlay(view)
	hand, ok := g.legal(seat, offered, open)
	if !ok && open {
		log.Infof("round %s: %s did not lead, open table policy applied\n", g.state.ID, g.players[seat].Name)
		hand, ok = g.legal(seat, g.policy(view), open)
		if !ok {
			hand, ok = g.legal(seat, LowestCard(view), open)
		}
	}
	if !ok {
		g.pass(seat, len(offered) > 0)
		return nil
	}
	return g.play(seat, hand)
}

func (g *Game) pass(seat int, implicit bool) {
	g.state.Passes++
	g.emit(event.Passed{
		Header:   event.Header{At: consts.PhasePlaying, Player: seat},
		Implicit: implicit,
	})
	g.state.Turn = g.turns.Next()
}

func (g *Game) play(seat int, hand rule.Hand) error {
	player := g.players[seat]
	player.hand.RemoveCards(hand.Cards)
	player.PlayCount++
	if hand.IsBombLike() {
		g.state.BombCount++
	}
	incumbent := hand.Clone()
	g.state.Incumbent = &incumbent
	g.state.IncumbentSeat = seat
	g.state.Passes = 0
	g.state.History = append(g.state.History, Play{Seat: seat, Hand: hand.Clone()})
	g.emit(event.HandPlayed{
		Header:    event.Header{At: consts.PhasePlaying, Player: seat},
		Hand:      hand.Clone(),
		Remaining: player.HandSize(),
	})
	if player.hand.Empty() {
		return g.finish(seat)
	}
	g.state.Turn = g.turns.Next()
	return nil
}

// RunPlaying plays turns until a hand is empty.
func (g *Game) RunPlaying() error {
	for g.state.Phase == consts.PhasePlaying {
		if err := g.PlayTurn(); err != nil {
			return err
		}
	}
	if !g.state.Finished() {
		return consts.ErrorsPhaseInvalid
	}
	return nil
}

func (g *Game) finish(winner int) error {
	s := g.state
	s.Winner = winner
	landlord := g.players[s.Landlord]
	landlordWon := winner == s.Landlord
	if landlordWon {
		s.Spring = true
		for _, player := range g.players {
			if !player.IsLandlord() && player.PlayCount > 0 {
				s.Spring = false
			}
		}
	} else {
		s.AntiSpring = landlord.PlayCount <= 1
	}
	s.Multiplier = Multiplier(s.HighestBid, s.BombCount, s.Spring || s.AntiSpring)
	s.Deltas = Deltas(s.Landlord, landlordWon, s.Multiplier)
	for seat, player := range g.players {
		player.Score += s.Deltas[seat]
		s.Scores[seat] = player.Score
	}
	if err := g.advance(consts.PhaseFinished); err != nil {
		return err
	}
	g.emit(event.RoundSettled{
		Header:     event.Header{At: consts.PhaseFinished, Player: winner},
		Winner:     winner,
		Landlord:   s.Landlord,
		Spring:     s.Spring,
		AntiSpring: s.AntiSpring,
		BombCount:  s.BombCount,
		Multiplier: s.Multiplier,
		Deltas:     s.Deltas,
		Scores:     s.Scores,
	})
	log.Infof("round %s: %s wins, multiplier %d, scores %v\n", s.ID, g.players[winner].Name, s.Multiplier, s.Scores)
	return nil
}

func (g *Game) view(seat int) View {
	s := g.state
	player := g.players[seat]
	view := View{
		Seat:          seat,
		Name:          player.Name,
		Role:          player.Role,
		Hand:          player.Cards(),
		Phase:         s.Phase,
		Roles:         s.Roles,
		Landlord:      s.Landlord,
		HighestBid:    s.HighestBid,
		HighestBidder: s.HighestBidder,
		IncumbentSeat: event.NoSeat,
		BombCount:     s.BombCount,
		Bids:          append([]Bid(nil), s.Bids...),
		History:       make([]Play, 0, len(s.History)),
	}
	for _, play := range s.History {
		view.History = append(view.History, Play{Seat: play.Seat, Hand: play.Hand.Clone()})
	}
	for i, p := range g.players {
		view.HandSizes[i] = p.HandSize()
	}
	if player.IsLandlord() {
		view.Bottom = append([]card.Card(nil), s.Bottom...)
	}
	if s.Incumbent != nil {
		incumbent := s.Incumbent.Clone()
		view.Incumbent = &incumbent
		view.IncumbentSeat = s.IncumbentSeat
	}
	return view
}
