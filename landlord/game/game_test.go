package game_test

import (
	"math/rand"
	"testing"

	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/landlord/event"
	"github.com/ratel-online/landlord/landlord/game"
	"github.com/ratel-online/landlord/rule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var names = []string{"east", "south", "west"}

// stub answers with fixed functions so rounds are reproducible whatever the deal.
type stub struct {
	bid  func(view game.View) int
	play func(view game.View) []card.Card
}

func (s stub) DecideBid(view game.View) int {
	if s.bid == nil {
		return 0
	}
	return s.bid(view)
}

func (s stub) DecidePlay(view game.View) []card.Card {
	if s.play == nil {
		return nil
	}
	return s.play(view)
}

func bidding(value int) func(game.View) int {
	return func(game.View) int { return value }
}

// lowestSingle leads the lowest card and follows singles with the lowest card that beats them.
func lowestSingle(view game.View) []card.Card {
	if view.Open() {
		return game.LowestCard(view)
	}
	if view.Incumbent.Kind != rule.KindSingle {
		return nil
	}
	for _, c := range view.Hand {
		if c.Rank > view.Incumbent.MainRank {
			return []card.Card{c}
		}
	}
	return nil
}

func same(s game.Strategy) []game.Strategy {
	return []game.Strategy{s, s, s}
}

func newGame(t *testing.T, strategies []game.Strategy, opts ...game.Option) (*game.Game, *event.DummyListener) {
	listener := event.NewDummyListener()
	opts = append([]game.Option{game.WithRand(rand.New(rand.NewSource(7))), game.WithListener(listener)}, opts...)
	g, err := game.New(names, strategies, opts...)
	require.NoError(t, err)
	return g, listener
}

func TestNew(t *testing.T) {
	s := stub{}
	scenarios := []struct {
		description string
		names       []string
		strategies  []game.Strategy
	}{
		{"two_seats", names[:2], []game.Strategy{s, s}},
		{"four_strategies", names, []game.Strategy{s, s, s, s}},
		{"missing_strategy", names, []game.Strategy{s, nil, s}},
	}
	for _, scenario := range scenarios {
		t.Run(scenario.description, func(t *testing.T) {
			_, err := game.New(scenario.names, scenario.strategies)
			require.Equal(t, consts.ErrorsSeatsInvalid, err)
		})
	}

	g, err := game.New(names, same(s))
	require.NoError(t, err)
	require.Len(t, g.Players(), consts.Seats)
	require.Equal(t, consts.PhaseIdle, g.State().Phase)
}

func TestDeal(t *testing.T) {
	g, listener := newGame(t, same(stub{}))
	require.NoError(t, g.Deal())

	state := g.State()
	require.Equal(t, consts.PhaseBidding, state.Phase)
	require.NotEmpty(t, state.ID)
	require.Len(t, state.Bottom, consts.BottomSize)
	require.GreaterOrEqual(t, state.FirstBidder, 0)
	require.Less(t, state.FirstBidder, consts.Seats)

	var dealt []card.Card
	for _, player := range g.Players() {
		require.Equal(t, consts.HandSize, player.HandSize())
		require.Equal(t, game.RoleUndetermined, player.Role)
		dealt = append(dealt, player.Cards()...)
	}
	dealt = append(dealt, state.Bottom...)
	require.ElementsMatch(t, []card.Card(card.NewDeck()), dealt)

	require.Equal(t, []event.Event{
		event.PhaseChanged{Header: event.Header{At: consts.PhaseDealing, Player: event.NoSeat}, From: consts.PhaseIdle},
		event.PhaseChanged{Header: event.Header{At: consts.PhaseBidding, Player: event.NoSeat}, From: consts.PhaseDealing},
	}, listener.ReceivedEvents())
}

func TestBidding(t *testing.T) {
	scenarios := []struct {
		description string
		bids        [consts.Seats]int
		// recorded is indexed by bidding order, starting at the first bidder.
		recorded []int
		highest  int
		winner   int
	}{
		{"clamped_to_three_ends_bidding", [3]int{9, 9, 9}, []int{3}, 3, 0},
		{"equal_bids_are_void", [3]int{1, 1, 1}, []int{1, 0, 0}, 1, 0},
		{"negative_bids_are_no_bids", [3]int{-2, 2, -1}, []int{0, 2, 0}, 2, 1},
		{"raising_bids", [3]int{1, 2, 3}, []int{1, 2, 3}, 3, 2},
		{"lower_bid_after_higher", [3]int{2, 1, 0}, []int{2, 0, 0}, 2, 0},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.description, func(t *testing.T) {
			// Bids are scripted by bidding order, which only exists after the deal.
			order := 0
			s := stub{bid: func(game.View) int {
				value := scenario.bids[order]
				order++
				return value
			}}
			g, listener := newGame(t, same(s))
			require.NoError(t, g.Deal())
			first := g.State().FirstBidder

			ok, err := g.RunBidding()
			require.NoError(t, err)
			require.True(t, ok)

			state := g.State()
			require.Len(t, state.Bids, len(scenario.recorded))
			for i, bid := range state.Bids {
				assert.Equal(t, (first+i)%consts.Seats, bid.Seat)
				assert.Equal(t, scenario.recorded[i], bid.Value)
			}
			landlord := (first + scenario.winner) % consts.Seats
			require.Equal(t, scenario.highest, state.HighestBid)
			require.Equal(t, landlord, state.HighestBidder)
			require.Equal(t, landlord, state.Landlord)
			require.Equal(t, landlord, state.Turn)
			require.Equal(t, consts.PhasePlaying, state.Phase)
			require.False(t, state.Forced)

			for seat, player := range g.Players() {
				if seat == landlord {
					require.Equal(t, game.RoleLandlord, player.Role)
					require.Equal(t, consts.HandSize+consts.BottomSize, player.HandSize())
					require.True(t, player.Holds(state.Bottom))
				} else {
					require.Equal(t, game.RoleFarmer, player.Role)
					require.Equal(t, consts.HandSize, player.HandSize())
				}
			}

			bids := 0
			for _, e := range listener.ReceivedEvents() {
				switch e := e.(type) {
				case event.BidPlaced:
					assert.Equal(t, scenario.bids[bids], e.Requested)
					assert.Equal(t, scenario.recorded[bids], e.Value)
					bids++
				case event.LandlordAssigned:
					assert.Equal(t, landlord, e.Seat())
					assert.Equal(t, scenario.highest, e.Bid)
					assert.ElementsMatch(t, state.Bottom, e.Bottom)
				}
			}
			require.Equal(t, len(scenario.recorded), bids)
		})
	}
}

func TestBiddingWithoutLandlord(t *testing.T) {
	g, _ := newGame(t, same(stub{bid: bidding(0)}))
	require.NoError(t, g.Deal())

	ok, err := g.RunBidding()
	require.NoError(t, err)
	require.False(t, ok)

	state := g.State()
	require.Equal(t, consts.PhaseBidding, state.Phase)
	require.Equal(t, event.NoSeat, state.HighestBidder)
	require.Len(t, state.Bids, consts.Seats)

	_, err = g.RunBidding()
	require.Equal(t, consts.ErrorsPhaseInvalid, err)
	require.Equal(t, consts.ErrorsPhaseInvalid, g.PlayTurn())

	t.Run("force_assign", func(t *testing.T) {
		require.Equal(t, consts.ErrorsSeatInvalid, g.ForceLandlord(3))
		require.NoError(t, g.ForceLandlord(state.FirstBidder))
		require.True(t, state.Forced)
		require.Equal(t, consts.ForcedBid, state.HighestBid)
		require.Equal(t, state.FirstBidder, state.Landlord)
		require.Equal(t, consts.PhasePlaying, state.Phase)
		require.Equal(t, consts.ErrorsPhaseInvalid, g.ForceLandlord(state.FirstBidder))
	})

	t.Run("redeal", func(t *testing.T) {
		g, _ := newGame(t, same(stub{bid: bidding(0)}))
		require.NoError(t, g.Deal())
		ok, err := g.RunBidding()
		require.NoError(t, err)
		require.False(t, ok)
		previous := g.State()

		require.NoError(t, g.Deal())
		require.NotSame(t, previous, g.State())
		require.NotEqual(t, previous.ID, g.State().ID)
		require.Empty(t, g.State().Bids)
	})
}

func TestForceLandlordRefusesBeforeBidding(t *testing.T) {
	g, _ := newGame(t, same(stub{bid: bidding(0)}))
	require.NoError(t, g.Deal())
	require.Equal(t, consts.ErrorsPhaseInvalid, g.ForceLandlord(0))
	require.Equal(t, consts.PhaseBidding, g.State().Phase)
	require.Equal(t, event.NoSeat, g.State().Landlord)

	ok, err := g.RunBidding()
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, g.ForceLandlord(0))
}

func TestForceLandlordRefusesAfterBids(t *testing.T) {
	g, _ := newGame(t, same(stub{bid: bidding(1)}))
	require.NoError(t, g.Deal())
	ok, err := g.RunBidding()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, consts.ErrorsPhaseInvalid, g.ForceLandlord(0))
}

func TestPhaseOrder(t *testing.T) {
	g, _ := newGame(t, same(stub{bid: bidding(3), play: lowestSingle}))
	require.Equal(t, consts.ErrorsPhaseInvalid, g.PlayTurn())
	_, err := g.RunBidding()
	require.Equal(t, consts.ErrorsPhaseInvalid, err)

	require.NoError(t, g.Deal())
	_, err = g.State().Result()
	require.Equal(t, consts.ErrorsRoundUnfinished, err)

	ok, err := g.RunBidding()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, consts.ErrorsRoundUnfinished, g.Deal())
	require.Equal(t, consts.ErrorsPhaseInvalid, g.ForceLandlord(0))

	require.NoError(t, g.RunPlaying())
	require.Equal(t, consts.ErrorsPhaseInvalid, g.PlayTurn())
	_, err = g.State().Result()
	require.NoError(t, err)
}

func TestSpring(t *testing.T) {
	// The landlord leads its lowest card every turn, the farmers always pass.
	s := stub{
		bid: bidding(2),
		play: func(view game.View) []card.Card {
			if view.Role == game.RoleLandlord {
				return game.LowestCard(view)
			}
			return nil
		},
	}
	g, listener := newGame(t, same(s))
	require.NoError(t, g.Deal())
	ok, err := g.RunBidding()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, g.RunPlaying())

	state := g.State()
	result, err := state.Result()
	require.NoError(t, err)
	require.Equal(t, state.Landlord, result.Winner)
	require.True(t, result.LandlordWon())
	require.True(t, result.Spring)
	require.False(t, result.AntiSpring)
	require.Equal(t, 0, result.BombCount)
	require.Equal(t, 4, result.Multiplier)

	players := g.Players()
	require.Equal(t, consts.HandSize+consts.BottomSize, players[state.Landlord].PlayCount)
	for seat, player := range players {
		if seat == state.Landlord {
			require.Equal(t, 8, result.Deltas[seat])
			require.Equal(t, 8, player.Score)
		} else {
			require.Equal(t, 0, player.PlayCount)
			require.Equal(t, -4, result.Deltas[seat])
			require.Equal(t, -4, player.Score)
		}
	}

	last := listener.ReceivedEvents()[len(listener.ReceivedEvents())-1]
	settled, ok := last.(event.RoundSettled)
	require.True(t, ok)
	require.True(t, settled.Spring)
	require.Equal(t, result.Scores, settled.Scores)
}

func TestAntiSpring(t *testing.T) {
	// The landlord leads once, the farmer after it beats that card and then leads its whole hand.
	s := stub{
		bid: bidding(1),
		play: func(view game.View) []card.Card {
			switch {
			case view.Role == game.RoleLandlord:
				if view.Open() {
					return game.LowestCard(view)
				}
				return nil
			case view.Seat == (view.Landlord+1)%consts.Seats:
				return lowestSingle(view)
			}
			return nil
		},
	}
	g, _ := newGame(t, same(s))
	require.NoError(t, g.Deal())
	ok, err := g.RunBidding()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, g.RunPlaying())

	state := g.State()
	result, err := state.Result()
	require.NoError(t, err)
	require.Equal(t, (state.Landlord+1)%consts.Seats, result.Winner)
	require.False(t, result.LandlordWon())
	require.True(t, result.AntiSpring)
	require.False(t, result.Spring)
	require.Equal(t, 2, result.Multiplier)
	require.Equal(t, 1, g.Players()[state.Landlord].PlayCount)
	for seat := range g.Players() {
		if seat == state.Landlord {
			require.Equal(t, -4, result.Deltas[seat])
		} else {
			require.Equal(t, 2, result.Deltas[seat])
		}
	}
}

func TestMultiplier(t *testing.T) {
	scenarios := []struct {
		description string
		bid         int
		bombs       int
		spring      bool
		multiplier  int
	}{
		{"forced_bid", 1, 0, false, 1},
		{"no_bid_counts_as_one", 0, 0, false, 1},
		{"bid_two_one_bomb", 2, 1, false, 4},
		{"bid_three_two_bombs_spring", 3, 2, true, 24},
		{"spring_only", 1, 0, true, 2},
	}
	for _, scenario := range scenarios {
		t.Run(scenario.description, func(t *testing.T) {
			require.Equal(t, scenario.multiplier, game.Multiplier(scenario.bid, scenario.bombs, scenario.spring))
		})
	}
}

func TestDeltas(t *testing.T) {
	require.Equal(t, [consts.Seats]int{-4, 8, -4}, game.Deltas(1, true, game.Multiplier(2, 1, false)))
	require.Equal(t, [consts.Seats]int{3, 3, -6}, game.Deltas(2, false, 3))
}

func TestScoresAccumulateAcrossRounds(t *testing.T) {
	s := stub{bid: bidding(3), play: lowestSingle}
	g, _ := newGame(t, same(s))

	var previous *game.State
	for round := 0; round < 3; round++ {
		require.NoError(t, g.Deal())
		if previous != nil {
			require.True(t, previous.Finished())
			require.NotSame(t, previous, g.State())
		}
		ok, err := g.RunBidding()
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, g.RunPlaying())
		previous = g.State()
	}

	total := 0
	for seat, player := range g.Players() {
		require.Equal(t, previous.Scores[seat], player.Score)
		total += player.Score
	}
	require.Equal(t, 0, total)

	g.ResetScores()
	for _, player := range g.Players() {
		require.Equal(t, 0, player.Score)
	}
	require.NotEqual(t, [consts.Seats]int{}, previous.Scores)
}

// adversary offers random cards from a full deck, mostly not held and rarely a legal shape.
func adversary(seed int64) game.Strategy {
	rnd := rand.New(rand.NewSource(seed))
	deck := card.NewDeck()
	return stub{
		bid: func(game.View) int { return rnd.Intn(11) - 5 },
		play: func(view game.View) []card.Card {
			switch rnd.Intn(4) {
			case 0:
				return nil
			case 1:
				if len(view.Hand) > 0 {
					return view.Hand[:1+rnd.Intn(len(view.Hand))]
				}
			}
			rnd.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
			return append([]card.Card(nil), deck[:1+rnd.Intn(6)]...)
		},
	}
}

func TestRoundsTerminateWithAdversarialProviders(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		strategies := []game.Strategy{adversary(seed), adversary(seed * 31), adversary(seed * 97)}
		g, listener := newGame(t, strategies, game.WithRand(rand.New(rand.NewSource(seed))))
		require.NoError(t, g.Deal())
		ok, err := g.RunBidding()
		require.NoError(t, err)
		if !ok {
			require.NoError(t, g.ForceLandlord(g.State().FirstBidder))
		}

		sizes := [consts.Seats]int{}
		for seat, player := range g.Players() {
			sizes[seat] = player.HandSize()
		}
		turns := 0
		for g.State().Phase == consts.PhasePlaying {
			require.NoError(t, g.PlayTurn())
			turns++
			require.LessOrEqual(t, turns, consts.DeckSize*consts.Seats)
		}

		state := g.State()
		require.True(t, state.Finished())
		require.Equal(t, 0, g.Players()[state.Winner].HandSize())

		played := 0
		for _, e := range listener.ReceivedEvents() {
			if e, ok := e.(event.HandPlayed); ok {
				sizes[e.Seat()] -= e.Hand.Size()
				require.Equal(t, sizes[e.Seat()], e.Remaining)
				played += e.Hand.Size()
			}
		}
		remaining := 0
		for _, player := range g.Players() {
			remaining += player.HandSize()
		}
		require.Equal(t, consts.DeckSize, played+remaining)
	}
}

func TestOpenTablePolicy(t *testing.T) {
	t.Run("custom_policy_leads", func(t *testing.T) {
		var asked int
		policy := func(view game.View) []card.Card {
			asked++
			hand := view.Hand
			return []card.Card{hand[len(hand)-1]}
		}
		g, listener := newGame(t, same(stub{bid: bidding(3)}), game.WithOpenTablePolicy(policy))
		require.NoError(t, g.Deal())
		_, err := g.RunBidding()
		require.NoError(t, err)
		landlord := g.Players()[g.State().Landlord]
		highest := landlord.Cards()[landlord.HandSize()-1]

		require.NoError(t, g.PlayTurn())
		require.Equal(t, 1, asked)
		played, ok := listener.ReceivedEvents()[len(listener.ReceivedEvents())-1].(event.HandPlayed)
		require.True(t, ok)
		require.Equal(t, []card.Card{highest}, played.Hand.Cards)
	})

	t.Run("invalid_policy_falls_back_to_lowest_card", func(t *testing.T) {
		policy := func(game.View) []card.Card { return nil }
		g, listener := newGame(t, same(stub{bid: bidding(3)}), game.WithOpenTablePolicy(policy))
		require.NoError(t, g.Deal())
		_, err := g.RunBidding()
		require.NoError(t, err)
		lowest := g.Players()[g.State().Landlord].Cards()[0]

		require.NoError(t, g.PlayTurn())
		played, ok := listener.ReceivedEvents()[len(listener.ReceivedEvents())-1].(event.HandPlayed)
		require.True(t, ok)
		require.Equal(t, rule.KindSingle, played.Hand.Kind)
		require.Equal(t, lowest.Rank, played.Hand.MainRank)
	})
}

func TestIllegalPlaysDegradeToPasses(t *testing.T) {
	var offered []card.Card
	s := stub{
		bid: bidding(3),
		play: func(view game.View) []card.Card {
			if view.Role == game.RoleLandlord {
				return game.LowestCard(view)
			}
			return offered
		},
	}
	g, listener := newGame(t, same(s))
	require.NoError(t, g.Deal())
	_, err := g.RunBidding()
	require.NoError(t, err)
	state := g.State()
	require.NoError(t, g.PlayTurn())

	next := (state.Landlord + 1) % consts.Seats
	farmer := g.Players()[next]
	cards := farmer.Cards()
	scenarios := []struct {
		description string
		offered     []card.Card
	}{
		{"unheld_cards", []card.Card{state.Incumbent.Cards[0]}},
		{"illegal_shape", []card.Card{cards[0], cards[len(cards)-1]}},
		{"lower_single", []card.Card{card.New(card.Rank3, card.Spade)}},
	}
	for _, scenario := range scenarios {
		t.Run(scenario.description, func(t *testing.T) {
			offered = scenario.offered
			if scenario.description == "lower_single" && !farmer.Holds(offered) {
				// Any card that does not beat the incumbent works as well.
				for _, c := range cards {
					if c.Rank <= state.Incumbent.MainRank {
						offered = []card.Card{c}
						break
					}
				}
			}
			turn := state.Turn
			passes := state.Passes
			size := g.Players()[turn].HandSize()

			require.NoError(t, g.PlayTurn())

			passed, ok := listener.ReceivedEvents()[len(listener.ReceivedEvents())-1].(event.Passed)
			require.True(t, ok)
			require.Equal(t, turn, passed.Seat())
			require.Equal(t, size, g.Players()[turn].HandSize())
			require.Equal(t, passes+1, state.Passes)
			require.Equal(t, (turn+1)%consts.Seats, state.Turn)
			if len(offered) > 0 {
				require.True(t, passed.Implicit)
			}

			// Hand the lead back to the landlord for the next scenario.
			for state.Turn != state.Landlord {
				offered = nil
				require.NoError(t, g.PlayTurn())
			}
			require.True(t, state.Open())
			require.NoError(t, g.PlayTurn())
			require.Equal(t, state.Landlord, state.IncumbentSeat)
		})
	}
}

func TestViewHidesBottomFromFarmers(t *testing.T) {
	views := map[int]game.View{}
	s := stub{
		bid: bidding(3),
		play: func(view game.View) []card.Card {
			views[view.Seat] = view
			return lowestSingle(view)
		},
	}
	g, _ := newGame(t, same(s))
	require.NoError(t, g.Deal())
	_, err := g.RunBidding()
	require.NoError(t, err)
	for i := 0; i < consts.Seats; i++ {
		require.NoError(t, g.PlayTurn())
	}

	state := g.State()
	require.Len(t, views, consts.Seats)
	for seat, view := range views {
		if seat == state.Landlord {
			require.ElementsMatch(t, state.Bottom, view.Bottom)
			require.Equal(t, game.RoleLandlord, view.Role)
		} else {
			require.Empty(t, view.Bottom)
			require.Equal(t, game.RoleFarmer, view.Role)
		}
		require.Equal(t, state.Landlord, view.Landlord)
	}
	require.True(t, views[state.Landlord].Open())
}

func TestViewMutationsLeaveStateAlone(t *testing.T) {
	bigJoker := card.New(card.RankBigJoker, card.Joker)
	s := stub{
		bid: bidding(3),
		play: func(view game.View) []card.Card {
			play := lowestSingle(view)
			for _, p := range view.History {
				p.Hand.Cards[0] = bigJoker
			}
			if view.Incumbent != nil {
				view.Incumbent.Cards[0] = bigJoker
			}
			return play
		},
	}
	var played [][]card.Card
	recorder := event.ListenerFunc(func(e event.Event) {
		if e, ok := e.(event.HandPlayed); ok {
			played = append(played, append([]card.Card(nil), e.Hand.Cards...))
		}
	})
	g, listener := newGame(t, same(s), game.WithListener(recorder))
	require.NoError(t, g.Deal())
	_, err := g.RunBidding()
	require.NoError(t, err)
	for i := 0; i < 6 && g.State().Phase == consts.PhasePlaying; i++ {
		require.NoError(t, g.PlayTurn())
	}

	state := g.State()
	require.Len(t, state.History, len(played))
	require.Greater(t, len(played), 1)
	for i, play := range state.History {
		require.Equal(t, played[i], play.Hand.Cards)
	}
	i := 0
	for _, e := range listener.ReceivedEvents() {
		if e, ok := e.(event.HandPlayed); ok {
			require.Equal(t, played[i], e.Hand.Cards)
			i++
		}
	}
	if state.Incumbent != nil {
		require.Equal(t, played[len(played)-1], state.Incumbent.Cards)
	}
}

func TestEventLog(t *testing.T) {
	g, listener := newGame(t, same(stub{bid: bidding(2), play: lowestSingle}))
	require.NoError(t, g.Deal())
	_, err := g.RunBidding()
	require.NoError(t, err)
	require.NoError(t, g.RunPlaying())

	events := listener.ReceivedEvents()
	require.Equal(t, g.State().Events, events)

	var phases []consts.Phase
	for _, e := range events {
		if e, ok := e.(event.PhaseChanged); ok {
			phases = append(phases, e.Phase())
		}
	}
	require.Equal(t, []consts.Phase{consts.PhaseDealing, consts.PhaseBidding, consts.PhasePlaying, consts.PhaseFinished}, phases)

	actions := listener.Actions()
	require.Equal(t, event.ActionSettle, actions[len(actions)-1])
	require.Equal(t, event.ActionPhase, actions[len(actions)-2])
	require.Equal(t, event.ActionBid, actions[2])

	played := 0
	for _, e := range events {
		if _, ok := e.(event.HandPlayed); ok {
			played++
		}
	}
	require.Equal(t, len(g.State().History), played)
}
