package model

// Message types pushed to live view clients.
const (
	TypeDeal     = "deal"
	TypeBid      = "bid"
	TypeLandlord = "landlord"
	TypePlay     = "play"
	TypePass     = "pass"
	TypeResult   = "result"
	TypeRounds   = "rounds"
)

// ActionStart is the only request a viewer can send.
const ActionStart = "start"

type Card struct {
	Rank    int    `json:"rank"`
	Suit    string `json:"suit"`
	Display string `json:"display"`
}

type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	HandSize int    `json:"hand_size"`
	Hand     []Card `json:"hand"`
	Score    int    `json:"score"`
}

type Header struct {
	Type  string `json:"type"`
	Round string `json:"round"`
}

type Deal struct {
	Header
	Players []Player `json:"players"`
	Bottom  []Card   `json:"bottom"`
}

type Bid struct {
	Header
	PlayerID int `json:"player_id"`
	Bid      int `json:"bid"`
}

type Landlord struct {
	Header
	PlayerID   int      `json:"player_id"`
	Players    []Player `json:"players"`
	Bottom     []Card   `json:"bottom"`
	HighestBid int      `json:"highest_bid"`
	Forced     bool     `json:"forced"`
}

type Play struct {
	Header
	PlayerID int    `json:"player_id"`
	HandType string `json:"hand_type"`
	Cards    []Card `json:"cards"`
	IsBomb   bool   `json:"is_bomb"`
	HandSize int    `json:"hand_size"`
	Hand     []Card `json:"hand"`
	Strategy string `json:"strategy"`
}

type Pass struct {
	Header
	PlayerID int    `json:"player_id"`
	Strategy string `json:"strategy"`
}

type Score struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Delta int    `json:"delta"`
	Score int    `json:"score"`
}

type Result struct {
	Header
	WinnerID         int     `json:"winner_id"`
	WinnerName       string  `json:"winner_name"`
	WinnerIsLandlord bool    `json:"winner_is_landlord"`
	IsSpring         bool    `json:"is_spring"`
	IsAntiSpring     bool    `json:"is_anti_spring"`
	BombCount        int     `json:"bomb_count"`
	Multiplier       int     `json:"multiplier"`
	Scores           []Score `json:"scores"`
}

// Rounds summarises the finished rounds kept by the scoreboard.
type Rounds struct {
	Type   string   `json:"type"`
	Played int      `json:"played"`
	Totals []Score  `json:"totals"`
	Recent []string `json:"recent"`
}

type Request struct {
	Action string `json:"action"`
}
