package rule

import (
	"sort"

	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/landlord/card"
)

type pattern struct {
	size   int
	counts map[card.Rank]int
}

func newPattern(cards []card.Card) pattern {
	return pattern{size: len(cards), counts: card.Counts(cards)}
}

// ranksWith returns the ranks appearing exactly count times, ascending.
func (p pattern) ranksWith(count int) []card.Rank {
	ranks := make([]card.Rank, 0, len(p.counts))
	for rank, c := range p.counts {
		if c == count {
			ranks = append(ranks, rank)
		}
	}
	sortRanks(ranks)
	return ranks
}

// uniform reports whether every rank appears exactly count times.
func (p pattern) uniform(count int) bool {
	for _, c := range p.counts {
		if c != count {
			return false
		}
	}
	return true
}

func (p pattern) ranks() []card.Rank {
	ranks := make([]card.Rank, 0, len(p.counts))
	for rank := range p.counts {
		ranks = append(ranks, rank)
	}
	sortRanks(ranks)
	return ranks
}

// tripleRun is the longest run of consecutive chainable ranks holding at least three copies.
// The lowest run wins a tie.
func (p pattern) tripleRun() []card.Rank {
	candidates := make([]card.Rank, 0, len(p.counts))
	for rank, c := range p.counts {
		if c >= 3 && rank.Chainable() {
			candidates = append(candidates, rank)
		}
	}
	if len(candidates) < 2 {
		return nil
	}
	sortRanks(candidates)
	var best []card.Rank
	current := candidates[:1]
	for i := 1; i < len(candidates); i++ {
		if candidates[i]-candidates[i-1] == 1 {
			current = candidates[i-len(current) : i+1]
			continue
		}
		if len(current) > len(best) {
			best = current
		}
		current = candidates[i : i+1]
	}
	if len(current) > len(best) {
		best = current
	}
	if len(best) < 2 {
		return nil
	}
	return best
}

// remainder subtracts one triple of every run rank from the counts.
func (p pattern) remainder(run []card.Rank) map[card.Rank]int {
	rest := make(map[card.Rank]int, len(p.counts))
	for rank, c := range p.counts {
		rest[rank] = c
	}
	for _, rank := range run {
		rest[rank] -= 3
		if rest[rank] == 0 {
			delete(rest, rank)
		}
	}
	return rest
}

func sortRanks(ranks []card.Rank) {
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })
}

// isStraight checks a sorted rank run: consecutive, chainable and long enough for units of the given count.
func isStraight(ranks []card.Rank, count int) bool {
	if len(ranks) == 0 {
		return false
	}
	if int(ranks[len(ranks)-1]-ranks[0]) != len(ranks)-1 {
		return false
	}
	if !ranks[0].Chainable() || !ranks[len(ranks)-1].Chainable() {
		return false
	}
	if count == 1 {
		return len(ranks) >= 5
	} else if count == 2 {
		return len(ranks) >= 3
	} else if count > 2 {
		return len(ranks) >= 2
	}
	return false
}

type shape struct {
	kind   Kind
	main   card.Rank
	length int
}

type detector func(p pattern) (shape, bool)

// detectors run in precedence order, the first match wins.
var detectors = []detector{
	detectRocket,
	detectBomb,
	detectSingle,
	detectPair,
	detectTriple,
	detectTripleWithSingle,
	detectTripleWithPair,
	detectStraight,
	detectPairStraight,
	detectAirplane,
	detectAirplaneWithSingles,
	detectAirplaneWithPairs,
	detectQuadWithSingles,
	detectQuadWithPairs,
}

// Classify returns the unique shape of the cards. Anything that is not a legal play reports false.
func Classify(cards []card.Card) (Hand, bool) {
	if len(cards) == 0 || len(cards) > consts.MaxPlaySize {
		return Hand{}, false
	}
	for _, c := range cards {
		if !c.Rank.Valid() {
			return Hand{}, false
		}
	}
	p := newPattern(cards)
	for _, detect := range detectors {
		if s, ok := detect(p); ok {
			return Hand{
				Kind:        s.kind,
				Cards:       card.Sorted(cards),
				MainRank:    s.main,
				ChainLength: s.length,
			}, true
		}
	}
	return Hand{}, false
}

func single(kind Kind, main card.Rank) (shape, bool) {
	return shape{kind: kind, main: main, length: 1}, true
}

func detectRocket(p pattern) (shape, bool) {
	if p.size == 2 && p.counts[card.RankSmallJoker] == 1 && p.counts[card.RankBigJoker] == 1 {
		return single(KindRocket, card.RankBigJoker)
	}
	return shape{}, false
}

func detectBomb(p pattern) (shape, bool) {
	if p.size == 4 && len(p.counts) == 1 {
		return single(KindBomb, p.ranks()[0])
	}
	return shape{}, false
}

func detectSingle(p pattern) (shape, bool) {
	if p.size == 1 {
		return single(KindSingle, p.ranks()[0])
	}
	return shape{}, false
}

func detectPair(p pattern) (shape, bool) {
	if p.size == 2 && len(p.counts) == 1 {
		return single(KindPair, p.ranks()[0])
	}
	return shape{}, false
}

func detectTriple(p pattern) (shape, bool) {
	if p.size == 3 && len(p.counts) == 1 {
		return single(KindTriple, p.ranks()[0])
	}
	return shape{}, false
}

func detectTripleWithSingle(p pattern) (shape, bool) {
	if p.size != 4 {
		return shape{}, false
	}
	if triples := p.ranksWith(3); len(triples) == 1 {
		return single(KindTripleWithSingle, triples[0])
	}
	return shape{}, false
}

func detectTripleWithPair(p pattern) (shape, bool) {
	if p.size != 5 {
		return shape{}, false
	}
	triples, pairs := p.ranksWith(3), p.ranksWith(2)
	if len(triples) == 1 && len(pairs) == 1 {
		return single(KindTripleWithPair, triples[0])
	}
	return shape{}, false
}

func detectStraight(p pattern) (shape, bool) {
	if p.size < 5 || p.size > 12 || !p.uniform(1) {
		return shape{}, false
	}
	ranks := p.ranks()
	if len(ranks) != p.size || !isStraight(ranks, 1) {
		return shape{}, false
	}
	return shape{kind: KindStraight, main: ranks[len(ranks)-1], length: len(ranks)}, true
}

func detectPairStraight(p pattern) (shape, bool) {
	if p.size < 6 || p.size%2 != 0 || !p.uniform(2) {
		return shape{}, false
	}
	ranks := p.ranks()
	if len(ranks) != p.size/2 || !isStraight(ranks, 2) {
		return shape{}, false
	}
	return shape{kind: KindPairStraight, main: ranks[len(ranks)-1], length: len(ranks)}, true
}

func detectAirplane(p pattern) (shape, bool) {
	if p.size < 6 || p.size%3 != 0 || !p.uniform(3) {
		return shape{}, false
	}
	run := p.tripleRun()
	if len(run) != p.size/3 || !isStraight(run, 3) {
		return shape{}, false
	}
	return shape{kind: KindAirplane, main: run[len(run)-1], length: len(run)}, true
}

func detectAirplaneWithSingles(p pattern) (shape, bool) {
	run := p.tripleRun()
	if run == nil || p.size != len(run)*4 {
		return shape{}, false
	}
	for _, c := range p.remainder(run) {
		if c >= 4 {
			return shape{}, false
		}
	}
	return shape{kind: KindAirplaneWithSingles, main: run[len(run)-1], length: len(run)}, true
}

func detectAirplaneWithPairs(p pattern) (shape, bool) {
	run := p.tripleRun()
	if run == nil || p.size != len(run)*5 {
		return shape{}, false
	}
	rest := p.remainder(run)
	if len(rest) != len(run) {
		return shape{}, false
	}
	for _, c := range rest {
		if c != 2 {
			return shape{}, false
		}
	}
	return shape{kind: KindAirplaneWithPairs, main: run[len(run)-1], length: len(run)}, true
}

func detectQuadWithSingles(p pattern) (shape, bool) {
	if p.size != 6 {
		return shape{}, false
	}
	if quads := p.ranksWith(4); len(quads) == 1 {
		return single(KindQuadWithSingles, quads[0])
	}
	return shape{}, false
}

func detectQuadWithPairs(p pattern) (shape, bool) {
	if p.size != 8 {
		return shape{}, false
	}
	quads, pairs := p.ranksWith(4), p.ranksWith(2)
	if len(quads) == 1 && len(pairs) == 2 {
		return single(KindQuadWithPairs, quads[0])
	}
	return shape{}, false
}
