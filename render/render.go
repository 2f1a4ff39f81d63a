package render

import (
	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/landlord/event"
	"github.com/ratel-online/landlord/landlord/game"
	"github.com/ratel-online/landlord/model"
)

// Table is the read side of a game needed to fill messages.
type Table interface {
	Players() []*game.Player
	State() *game.State
}

// Sink receives messages ready to be sent.
type Sink interface {
	Broadcast(msg interface{})
}

func Card(c card.Card) model.Card {
	return model.Card{Rank: int(c.Rank), Suit: string(c.Suit), Display: c.String()}
}

func Cards(cards []card.Card) []model.Card {
	result := make([]model.Card, 0, len(cards))
	for _, c := range cards {
		result = append(result, Card(c))
	}
	return result
}

func Player(p *game.Player) model.Player {
	return model.Player{
		ID:       p.Seat,
		Name:     p.Name,
		Role:     p.Role.String(),
		HandSize: p.HandSize(),
		Hand:     Cards(p.Cards()),
		Score:    p.Score,
	}
}

func Players(players []*game.Player) []model.Player {
	result := make([]model.Player, 0, len(players))
	for _, p := range players {
		result = append(result, Player(p))
	}
	return result
}

// Message converts an event to its wire form. Phase changes other than the end of dealing have none.
func Message(e event.Event, table Table) (interface{}, bool) {
	state := table.State()
	header := model.Header{Round: state.ID}
	switch e := e.(type) {
	case event.PhaseChanged:
		if e.Phase() != consts.PhaseBidding {
			return nil, false
		}
		header.Type = model.TypeDeal
		return model.Deal{Header: header, Players: Players(table.Players()), Bottom: Cards(state.Bottom)}, true
	case event.BidPlaced:
		header.Type = model.TypeBid
		return model.Bid{Header: header, PlayerID: e.Seat(), Bid: e.Value}, true
	case event.LandlordAssigned:
		header.Type = model.TypeLandlord
		return model.Landlord{
			Header:     header,
			PlayerID:   e.Seat(),
			Players:    Players(table.Players()),
			Bottom:     Cards(e.Bottom),
			HighestBid: e.Bid,
			Forced:     e.Forced,
		}, true
	case event.HandPlayed:
		header.Type = model.TypePlay
		player := table.Players()[e.Seat()]
		return model.Play{
			Header:   header,
			PlayerID: e.Seat(),
			HandType: e.Hand.Kind.DisplayName(),
			Cards:    Cards(e.Hand.Cards),
			IsBomb:   e.Hand.IsBombLike(),
			HandSize: e.Remaining,
			Hand:     Cards(player.Cards()),
			Strategy: PlayCommentary(e),
		}, true
	case event.Passed:
		header.Type = model.TypePass
		return model.Pass{Header: header, PlayerID: e.Seat(), Strategy: PassCommentary(state.Incumbent)}, true
	case event.RoundSettled:
		header.Type = model.TypeResult
		players := table.Players()
		scores := make([]model.Score, 0, len(players))
		for seat, p := range players {
			scores = append(scores, model.Score{
				Name:  p.Name,
				Role:  p.Role.String(),
				Delta: e.Deltas[seat],
				Score: e.Scores[seat],
			})
		}
		return model.Result{
			Header:           header,
			WinnerID:         e.Winner,
			WinnerName:       players[e.Winner].Name,
			WinnerIsLandlord: e.LandlordWon(),
			IsSpring:         e.Spring,
			IsAntiSpring:     e.AntiSpring,
			BombCount:        e.BombCount,
			Multiplier:       e.Multiplier,
			Scores:           scores,
		}, true
	}
	return nil, false
}

// Broadcaster forwards the messages of one table's events to a sink.
type Broadcaster struct {
	table Table
	sink  Sink
}

func NewBroadcaster(table Table, sink Sink) *Broadcaster {
	return &Broadcaster{table: table, sink: sink}
}

func (b *Broadcaster) OnEvent(e event.Event) {
	if msg, ok := Message(e, b.table); ok {
		b.sink.Broadcast(msg)
	}
}
