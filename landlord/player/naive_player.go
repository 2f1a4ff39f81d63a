package player

import (
	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/landlord/game"
	"github.com/ratel-online/landlord/rule"
)

type naivePlayer struct{}

func NewNaivePlayer() game.Strategy {
	return naivePlayer{}
}

func (naivePlayer) DecideBid(view game.View) int {
	if view.HighestBid == 0 {
		return 1
	}
	return 0
}

func (naivePlayer) DecidePlay(view game.View) []card.Card {
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
