package rule

import "fmt"

// Kind is the shape of a legal play.
type Kind int

const (
	KindSingle Kind = iota + 1
	KindPair
	KindTriple
	KindTripleWithSingle
	KindTripleWithPair
	KindStraight
	KindPairStraight
	KindAirplane
	KindAirplaneWithSingles
	KindAirplaneWithPairs
	KindQuadWithSingles
	KindQuadWithPairs
	KindBomb
	KindRocket
)

// Kinds lists every shape, in classification precedence order.
var Kinds = []Kind{
	KindRocket,
	KindBomb,
	KindSingle,
	KindPair,
	KindTriple,
	KindTripleWithSingle,
	KindTripleWithPair,
	KindStraight,
	KindPairStraight,
	KindAirplane,
	KindAirplaneWithSingles,
	KindAirplaneWithPairs,
	KindQuadWithSingles,
	KindQuadWithPairs,
}

type kindInfo struct {
	name    string
	display string
	chain   bool
}

var kinds = map[Kind]kindInfo{
	KindSingle:              {name: "single", display: "单张"},
	KindPair:                {name: "pair", display: "对子"},
	KindTriple:              {name: "triple", display: "三条"},
	KindTripleWithSingle:    {name: "triple_with_single", display: "三带一"},
	KindTripleWithPair:      {name: "triple_with_pair", display: "三带二"},
	KindStraight:            {name: "straight", display: "顺子", chain: true},
	KindPairStraight:        {name: "pair_straight", display: "连对", chain: true},
	KindAirplane:            {name: "airplane", display: "飞机", chain: true},
	KindAirplaneWithSingles: {name: "airplane_with_singles", display: "飞机带翅膀(单)", chain: true},
	KindAirplaneWithPairs:   {name: "airplane_with_pairs", display: "飞机带翅膀(对)", chain: true},
	KindQuadWithSingles:     {name: "quad_with_singles", display: "四带二(单)"},
	KindQuadWithPairs:       {name: "quad_with_pairs", display: "四带二(对)"},
	KindBomb:                {name: "bomb", display: "炸弹"},
	KindRocket:              {name: "rocket", display: "火箭"},
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DisplayName is the table name of the shape.
func (k Kind) DisplayName() string {
	if info, ok := kinds[k]; ok {
		return info.display
	}
	return k.String()
}

// Chain reports whether the shape is built on a run of consecutive ranks.
func (k Kind) Chain() bool {
	return kinds[k].chain
}

func (k Kind) BombLike() bool {
	return k == KindBomb || k == KindRocket
}
