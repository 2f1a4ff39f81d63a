package player

import (
	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/landlord/game"
	"github.com/ratel-online/landlord/rule"
)

// rulePlayer bids on hand strength, leads its smallest groups and follows with the smallest
// group of the same shape. It never breaks a bomb to follow.
type rulePlayer struct{}

func NewRulePlayer() game.Strategy {
	return rulePlayer{}
}

// strength scores bombs, the rocket, twos and aces.
func strength(hand []card.Card) int {
	counts := card.Counts(hand)
	score := 0
	for _, count := range counts {
		if count == 4 {
			score += 6
		}
	}
	if counts[card.RankSmallJoker] > 0 && counts[card.RankBigJoker] > 0 {
		score += 8
	}
	score += counts[card.Rank2] * 2
	score += counts[card.RankA]
	return score
}

func (rulePlayer) DecideBid(view game.View) int {
	score := strength(view.Hand)
	switch {
	case score >= 10:
		return 3
	case score >= 6:
		return max(2, view.HighestBid+1)
	case score >= 3:
		return max(1, view.HighestBid+1)
	}
	return 0
}

func (rulePlayer) DecidePlay(view game.View) []card.Card {
	if len(view.Hand) == 0 {
		return nil
	}
	if view.Open() {
		return lead(view.Hand)
	}
	return follow(view.Hand, *view.Incumbent)
}

func lead(hand []card.Card) []card.Card {
	if _, ok := rule.Classify(hand); ok {
		return append([]card.Card(nil), hand...)
	}
	g := newGroups(hand)
	if r, ok := g.lowest(func(rank card.Rank, count int) bool { return count == 1 }); ok {
		return g.take(r, 1)
	}
	if r, ok := g.lowest(func(rank card.Rank, count int) bool { return count == 2 }); ok {
		return g.take(r, 2)
	}
	if r, ok := g.lowest(func(rank card.Rank, count int) bool { return count == 3 }); ok {
		cards := g.take(r, 3)
		return append(cards, g.kicker(r)...)
	}
	return game.LowestCard(game.View{Hand: hand})
}

func follow(hand []card.Card, incumbent rule.Hand) []card.Card {
	g := newGroups(hand)
	target := incumbent.MainRank
	above := func(size int) func(card.Rank, int) bool {
		return func(rank card.Rank, count int) bool {
			return rank > target && count >= size && count < 4
		}
	}
	switch incumbent.Kind {
	case rule.KindSingle:
		if r, ok := g.lowest(above(1)); ok {
			return g.take(r, 1)
		}
	case rule.KindPair:
		if r, ok := g.lowest(above(2)); ok {
			return g.take(r, 2)
		}
	case rule.KindTriple, rule.KindTripleWithSingle, rule.KindTripleWithPair:
		r, ok := g.lowest(above(3))
		if !ok {
			return nil
		}
		cards := g.take(r, 3)
		switch incumbent.Kind {
		case rule.KindTripleWithSingle:
			kicker := g.kicker(r)
			if kicker == nil {
				return nil
			}
			cards = append(cards, kicker...)
		case rule.KindTripleWithPair:
			kicker := g.kickerPair(r)
			if kicker == nil {
				return nil
			}
			cards = append(cards, kicker...)
		}
		return cards
	case rule.KindBomb:
		if r, ok := g.lowest(func(rank card.Rank, count int) bool { return rank > target && count == 4 }); ok {
			return g.take(r, 4)
		}
		if g.counts[card.RankSmallJoker] > 0 && g.counts[card.RankBigJoker] > 0 {
			return append(g.take(card.RankSmallJoker, 1), g.take(card.RankBigJoker, 1)...)
		}
	}
	return nil
}

// groups indexes a sorted hand by rank.
type groups struct {
	ranks  []card.Rank
	counts map[card.Rank]int
	cards  map[card.Rank][]card.Card
}

func newGroups(hand []card.Card) groups {
	g := groups{counts: map[card.Rank]int{}, cards: map[card.Rank][]card.Card{}}
	for _, c := range card.Sorted(hand) {
		if g.counts[c.Rank] == 0 {
			g.ranks = append(g.ranks, c.Rank)
		}
		g.counts[c.Rank]++
		g.cards[c.Rank] = append(g.cards[c.Rank], c)
	}
	return g
}

func (g groups) lowest(accept func(rank card.Rank, count int) bool) (card.Rank, bool) {
	for _, rank := range g.ranks {
		if accept(rank, g.counts[rank]) {
			return rank, true
		}
	}
	return 0, false
}

func (g groups) take(rank card.Rank, n int) []card.Card {
	return append([]card.Card(nil), g.cards[rank][:n]...)
}

// kicker is the lowest card outside the excluded rank and outside bombs.
func (g groups) kicker(exclude card.Rank) []card.Card {
	if r, ok := g.lowest(func(rank card.Rank, count int) bool { return rank != exclude && count < 4 }); ok {
		return g.take(r, 1)
	}
	return nil
}

func (g groups) kickerPair(exclude card.Rank) []card.Card {
	if r, ok := g.lowest(func(rank card.Rank, count int) bool { return rank != exclude && count >= 2 && count < 4 }); ok {
		return g.take(r, 2)
	}
	return nil
}
