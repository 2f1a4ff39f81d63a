package game

import (
	"github.com/ratel-online/landlord/landlord/card"
)

type Role int

const (
	RoleUndetermined Role = iota
	RoleLandlord
	RoleFarmer
)

func (r Role) String() string {
	switch r {
	case RoleLandlord:
		return "landlord"
	case RoleFarmer:
		return "farmer"
	}
	return "undetermined"
}

func (r Role) DisplayName() string {
	switch r {
	case RoleLandlord:
		return "地主"
	case RoleFarmer:
		return "农民"
	}
	return "未定"
}

// Player is the per-seat state. The role, hand and play count belong to the current round,
// the score accumulates for as long as the player is reused.
type Player struct {
	Seat      int
	Name      string
	Role      Role
	PlayCount int
	Score     int

	hand *Hand
}

func NewPlayer(seat int, name string) *Player {
	return &Player{Seat: seat, Name: name, hand: NewHand()}
}

func (p *Player) Cards() []card.Card {
	return p.hand.Cards()
}

func (p *Player) HandSize() int {
	return p.hand.Size()
}

func (p *Player) Holds(cards []card.Card) bool {
	return p.hand.Contains(cards)
}

func (p *Player) IsLandlord() bool {
	return p.Role == RoleLandlord
}

func (p *Player) ResetScore() {
	p.Score = 0
}

func (p *Player) resetForRound() {
	p.hand.Clear()
	p.Role = RoleUndetermined
	p.PlayCount = 0
}
