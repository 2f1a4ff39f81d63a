package rule_test

import (
	"math/rand"
	"testing"

	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/rule"
	"github.com/stretchr/testify/require"
)

func mustClassify(t *testing.T, ranks ...card.Rank) rule.Hand {
	t.Helper()
	hand, ok := rule.Classify(cards(ranks...))
	require.True(t, ok, "ranks %v do not classify", ranks)
	return hand
}

func TestBeats(t *testing.T) {
	scenarios := []struct {
		description string
		candidate   []card.Rank
		incumbent   []card.Rank
		expected    bool
	}{
		{"higher_single", []card.Rank{r8}, []card.Rank{r7}, true},
		{"equal_single", []card.Rank{r7}, []card.Rank{r7}, false},
		{"two_beats_ace", []card.Rank{r2}, []card.Rank{rA}, true},
		{"joker_beats_two", []card.Rank{sj}, []card.Rank{r2}, true},
		{"big_joker_beats_small_joker", []card.Rank{bj}, []card.Rank{sj}, true},
		{"pair_does_not_beat_single", []card.Rank{r9, r9}, []card.Rank{r3}, false},
		{"higher_straight_same_length", []card.Rank{r4, r5, r6, r7, r8}, []card.Rank{r3, r4, r5, r6, r7}, true},
		{"longer_straight", []card.Rank{r3, r4, r5, r6, r7, r8}, []card.Rank{r3, r4, r5, r6, r7}, false},
		{"triple_with_single_by_triple_rank", []card.Rank{r5, r5, r5, r3}, []card.Rank{r4, r4, r4, rA}, true},
		{"triple_with_single_vs_triple_with_pair", []card.Rank{r5, r5, r5, r3, r3}, []card.Rank{r4, r4, r4, rA}, false},
		{"airplane_with_singles_ignores_wings", join(repeat(r5, 3), repeat(r6, 3), []card.Rank{r3, r4}), join(repeat(r3, 3), repeat(r4, 3), []card.Rank{r2, bj}), true},
		{"bomb_beats_straight", repeat(r3, 4), []card.Rank{rT, rJ, rQ, rK, rA}, true},
		{"bomb_beats_quad_with_singles", repeat(r3, 4), join(repeat(rA, 4), []card.Rank{r5, r6}), true},
		{"higher_bomb", repeat(r4, 4), repeat(r3, 4), true},
		{"lower_bomb", repeat(r3, 4), repeat(r4, 4), false},
		{"rocket_beats_bomb_of_twos", []card.Rank{sj, bj}, repeat(r2, 4), true},
		{"bomb_does_not_beat_rocket", repeat(r2, 4), []card.Rank{sj, bj}, false},
		{"single_does_not_beat_bomb", []card.Rank{bj}, repeat(r3, 4), false},
		{"quad_with_singles_does_not_beat_bomb", join(repeat(rA, 4), []card.Rank{r5, r6}), repeat(r3, 4), false},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.description, func(t *testing.T) {
			candidate := mustClassify(t, scenario.candidate...)
			incumbent := mustClassify(t, scenario.incumbent...)
			require.Equal(t, scenario.expected, rule.Beats(candidate, incumbent))
		})
	}
}

func TestNothingBeatsRocket(t *testing.T) {
	rocket := mustClassify(t, sj, bj)
	for _, hand := range sampleHands(2000) {
		require.False(t, rule.Beats(hand, rocket), hand.String())
		if hand.Kind != rule.KindRocket {
			require.True(t, rule.Beats(rocket, hand), hand.String())
		}
	}
}

func TestBombBeatsEverythingButBombsAndRocket(t *testing.T) {
	bomb := mustClassify(t, r3, r3, r3, r3)
	for _, hand := range sampleHands(2000) {
		if !hand.IsBombLike() {
			require.True(t, rule.Beats(bomb, hand), hand.String())
		}
	}
}

func TestBeatsIsAsymmetric(t *testing.T) {
	hands := sampleHands(600)
	for _, a := range hands {
		for _, b := range hands {
			require.False(t, rule.Beats(a, b) && rule.Beats(b, a), "%s <> %s", a, b)
		}
	}
}

func sampleHands(n int) []rule.Hand {
	rnd := rand.New(rand.NewSource(1))
	deck := card.NewDeck()
	hands := make([]rule.Hand, 0, n)
	for len(hands) < n {
		rnd.Shuffle(len(deck), func(a, b int) { deck[a], deck[b] = deck[b], deck[a] })
		// short plays classify far more often
		if hand, ok := rule.Classify(deck[:1+rnd.Intn(6)]); ok {
			hands = append(hands, hand)
		}
	}
	return hands
}
