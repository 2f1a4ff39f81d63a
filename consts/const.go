package consts

import (
	"time"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDealing
	PhaseBidding
	PhasePlaying
	PhaseFinished
)

var phaseNames = map[Phase]string{
	PhaseIdle:     "idle",
	PhaseDealing:  "dealing",
	PhaseBidding:  "bidding",
	PhasePlaying:  "playing",
	PhaseFinished: "finished",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

const (
	Seats       = 3
	DeckSize    = 54
	HandSize    = 17
	BottomSize  = 3
	MaxPlaySize = 20

	MinBid = 0
	MaxBid = 3

	// OpenAfterPasses is the number of consecutive passes that hands the lead back to the last player.
	OpenAfterPasses = 2

	MaxRedeal = 3
	ForcedBid = 1

	LLMTimeout      = 10 * time.Second
	LLMMaxTokens    = 256
	RenderDelay     = 800 * time.Millisecond
	BroadcastWindow = 5 * time.Second

	ScoreboardSize = 100
	RecentRounds   = 5
)

// Default endpoints of the remote decision provider.
const (
	DefaultLLMBaseURL = "https://api.deepseek.com/v1"
	DefaultLLMModel   = "deepseek-chat"
	DefaultWsAddr     = ":9998"
)

type Error struct {
	Code int
	Msg  string
	Exit bool
}

func (e Error) Error() string {
	return e.Msg
}

func NewErr(code int, exit bool, msg string) Error {
	return Error{Code: code, Exit: exit, Msg: msg}
}

var (
	ErrorsDeckInvalid      = NewErr(1, true, "Deck invalid. ")
	ErrorsSeatsInvalid     = NewErr(1, true, "Game seats invalid. ")
	ErrorsSeatInvalid      = NewErr(1, false, "Seat invalid. ")
	ErrorsPhaseInvalid     = NewErr(1, false, "Phase invalid. ")
	ErrorsBidInvalid       = NewErr(1, false, "Bid invalid. ")
	ErrorsNoLandlord       = NewErr(1, false, "All players gave up the landlord. ")
	ErrorsRoundUnfinished  = NewErr(1, false, "Round unfinished. ")
	ErrorsProviderDisabled = NewErr(2, false, "Provider disabled. ")
	ErrorsProviderReply    = NewErr(2, false, "Provider reply invalid. ")
	ErrorsConfigInvalid    = NewErr(3, true, "Config invalid. ")
)
