package render_test

import (
	"math/rand"
	"testing"

	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/landlord/event"
	"github.com/ratel-online/landlord/landlord/game"
	"github.com/ratel-online/landlord/landlord/player"
	"github.com/ratel-online/landlord/model"
	"github.com/ratel-online/landlord/render"
	"github.com/ratel-online/landlord/rule"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	messages []interface{}
}

func (r *recorder) Broadcast(msg interface{}) {
	r.messages = append(r.messages, msg)
}

func playRound(t *testing.T, sink render.Sink) *game.Game {
	strategies := []game.Strategy{player.NewRulePlayer(), player.NewRulePlayer(), player.NewRulePlayer()}
	g, err := game.New([]string{"a", "b", "c"}, strategies, game.WithRand(rand.New(rand.NewSource(11))))
	require.NoError(t, err)
	g.Subscribe(render.NewBroadcaster(g, sink))
	require.NoError(t, g.Deal())
	ok, err := g.RunBidding()
	require.NoError(t, err)
	if !ok {
		require.NoError(t, g.ForceLandlord(g.State().FirstBidder))
	}
	require.NoError(t, g.RunPlaying())
	return g
}

func TestBroadcasterMessages(t *testing.T) {
	sink := &recorder{}
	g := playRound(t, sink)
	state := g.State()

	require.NotEmpty(t, sink.messages)
	deal, ok := sink.messages[0].(model.Deal)
	require.True(t, ok)
	require.Equal(t, model.TypeDeal, deal.Type)
	require.Equal(t, state.ID, deal.Round)
	require.Len(t, deal.Players, 3)
	require.Len(t, deal.Bottom, 3)
	for _, p := range deal.Players {
		require.Equal(t, 17, p.HandSize)
		require.Len(t, p.Hand, 17)
		require.Equal(t, "undetermined", p.Role)
	}

	result, ok := sink.messages[len(sink.messages)-1].(model.Result)
	require.True(t, ok)
	require.Equal(t, state.Winner, result.WinnerID)
	require.Equal(t, state.Multiplier, result.Multiplier)
	require.Equal(t, state.Winner == state.Landlord, result.WinnerIsLandlord)
	require.Len(t, result.Scores, 3)
	for seat, score := range result.Scores {
		require.Equal(t, state.Scores[seat], score.Score)
		require.Equal(t, state.Deltas[seat], score.Delta)
	}

	landlords, plays := 0, 0
	for _, msg := range sink.messages {
		switch msg := msg.(type) {
		case model.Landlord:
			landlords++
			require.Equal(t, state.Landlord, msg.PlayerID)
			require.Len(t, msg.Bottom, 3)
			require.Equal(t, "landlord", msg.Players[state.Landlord].Role)
		case model.Play:
			plays++
			require.Len(t, msg.Hand, msg.HandSize)
			require.NotEmpty(t, msg.Strategy)
			require.NotEmpty(t, msg.HandType)
		case model.Pass:
			require.NotEmpty(t, msg.Strategy)
		}
	}
	require.Equal(t, 1, landlords)
	require.Equal(t, len(state.History), plays)
}

func TestCard(t *testing.T) {
	require.Equal(t, model.Card{Rank: 14, Suit: "♥", Display: "♥A"}, render.Card(card.New(card.RankA, card.Heart)))
	require.Equal(t, model.Card{Rank: 17, Suit: "🃏", Display: "大王"}, render.Card(card.New(card.RankBigJoker, card.Joker)))
}

func hand(t *testing.T, cards ...card.Card) rule.Hand {
	h, ok := rule.Classify(cards)
	require.True(t, ok)
	return h
}

func TestPlayCommentary(t *testing.T) {
	scenarios := []struct {
		description string
		hand        rule.Hand
		remaining   int
		commentary  string
	}{
		{"last_hand", hand(t, card.New(card.Rank3, card.Spade)), 0, "最后一手牌，直接清空！"},
		{"rocket", hand(t, card.New(card.RankSmallJoker, card.Joker), card.New(card.RankBigJoker, card.Joker)), 5, "王炸！一锤定音！"},
		{"bomb", hand(t, card.New(card.Rank8, card.Spade), card.New(card.Rank8, card.Heart), card.New(card.Rank8, card.Diamond), card.New(card.Rank8, card.Club)), 5, "炸弹出击！"},
		{"two", hand(t, card.New(card.Rank2, card.Spade)), 9, "大牌压制！"},
		{"few_left", hand(t, card.New(card.RankK, card.Spade)), 2, "只剩2张，准备收尾"},
		{"small", hand(t, card.New(card.Rank5, card.Spade)), 9, "先出小牌试探"},
		{"middle", hand(t, card.New(card.RankJ, card.Spade)), 9, "主动出击"},
		{"straight", hand(t, card.New(card.Rank3, card.Spade), card.New(card.Rank4, card.Heart), card.New(card.Rank5, card.Spade), card.New(card.Rank6, card.Club), card.New(card.Rank7, card.Spade)), 9, "5连顺子，一口气走牌"},
	}
	for _, scenario := range scenarios {
		t.Run(scenario.description, func(t *testing.T) {
			e := event.HandPlayed{Hand: scenario.hand, Remaining: scenario.remaining}
			require.Equal(t, scenario.commentary, render.PlayCommentary(e))
		})
	}
}

func TestPassCommentary(t *testing.T) {
	bomb := hand(t, card.New(card.Rank8, card.Spade), card.New(card.Rank8, card.Heart), card.New(card.Rank8, card.Diamond), card.New(card.Rank8, card.Club))
	ace := hand(t, card.New(card.RankA, card.Spade))
	low := hand(t, card.New(card.Rank6, card.Spade))
	require.Equal(t, "对方炸弹太大，忍一手", render.PassCommentary(&bomb))
	require.Equal(t, "大牌压不住，选择不出", render.PassCommentary(&ace))
	require.Equal(t, "暂时不出，等待时机", render.PassCommentary(&low))
	require.Empty(t, render.PassCommentary(nil))
}
