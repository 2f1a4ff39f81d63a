package rule

// Beats reports whether candidate may be played on top of incumbent.
func Beats(candidate, incumbent Hand) bool {
	if incumbent.Kind == KindRocket {
		return false
	}
	switch candidate.Kind {
	case KindRocket:
		return true
	case KindBomb:
		if incumbent.Kind == KindBomb {
			return candidate.MainRank > incumbent.MainRank
		}
		return true
	case KindSingle, KindPair, KindTriple,
		KindTripleWithSingle, KindTripleWithPair,
		KindStraight, KindPairStraight,
		KindAirplane, KindAirplaneWithSingles, KindAirplaneWithPairs,
		KindQuadWithSingles, KindQuadWithPairs:
		if candidate.Kind != incumbent.Kind || candidate.ChainLength != incumbent.ChainLength {
			return false
		}
		return candidate.MainRank > incumbent.MainRank
	}
	return false
}
