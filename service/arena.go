package service

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/ratel-online/core/log"
	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/landlord/game"
	"github.com/ratel-online/landlord/landlord/ui"
	"github.com/ratel-online/landlord/render"
)

type Option func(a *Arena)

// WithSeed makes every round of the arena reproducible. Zero keeps the clock seed.
func WithSeed(seed int64) Option {
	return func(a *Arena) {
		if seed != 0 {
			a.gameOpts = append(a.gameOpts, game.WithRand(rand.New(rand.NewSource(seed))))
		}
	}
}

// WithTerminal prints the rounds to out, pausing delay between events.
func WithTerminal(out io.Writer, delay time.Duration) Option {
	return func(a *Arena) {
		a.out = out
		a.delay = delay
		a.terminal = true
	}
}

// WithSink pushes every round and the scoreboard to a live view.
func WithSink(sink render.Sink) Option {
	return func(a *Arena) {
		a.sink = sink
	}
}

func WithOpenTablePolicy(policy game.OpenTablePolicy) Option {
	return func(a *Arena) {
		a.gameOpts = append(a.gameOpts, game.WithOpenTablePolicy(policy))
	}
}

// Arena seats three players at one game and plays rounds with them, one at a time.
type Arena struct {
	sync.Mutex
	game     *game.Game
	board    *Scoreboard
	names    []string
	gameOpts []game.Option
	sink     render.Sink
	out      io.Writer
	delay    time.Duration
	terminal bool
	renderer *ui.Renderer
}

func NewArena(names []string, strategies []game.Strategy, opts ...Option) (*Arena, error) {
	a := &Arena{board: NewScoreboard(consts.ScoreboardSize)}
	for _, opt := range opts {
		opt(a)
	}
	g, err := game.New(names, strategies, a.gameOpts...)
	if err != nil {
		return nil, err
	}
	a.game = g
	a.names = append([]string(nil), names...)
	if a.terminal {
		a.renderer = ui.NewRenderer(a.out, a.delay, g)
		g.Subscribe(a.renderer)
	}
	if a.sink != nil {
		g.Subscribe(render.NewBroadcaster(g, a.sink))
	}
	return a, nil
}

func (a *Arena) Game() *game.Game {
	return a.game
}

func (a *Arena) Scoreboard() *Scoreboard {
	return a.board
}

// RunRound deals until somebody bids, at most MaxRedeal times, then forces the first bidder of the
// last deal to be landlord and plays the round out.
func (a *Arena) RunRound() (game.Result, error) {
	a.Lock()
	defer a.Unlock()
	landlord := false
	for deal := 1; deal <= consts.MaxRedeal && !landlord; deal++ {
		if err := a.game.Deal(); err != nil {
			return game.Result{}, err
		}
		ok, err := a.game.RunBidding()
		if err != nil {
			return game.Result{}, err
		}
		landlord = ok
		if !ok {
			log.Infof("round %s: deal %d without landlord\n", a.game.State().ID, deal)
		}
	}
	if !landlord {
		if err := a.game.ForceLandlord(a.game.State().FirstBidder); err != nil {
			return game.Result{}, err
		}
	}
	if err := a.game.RunPlaying(); err != nil {
		return game.Result{}, err
	}
	result, err := a.game.State().Result()
	if err != nil {
		return game.Result{}, err
	}
	a.board.Add(a.names, result)
	if a.sink != nil {
		a.sink.Broadcast(a.board.Summary())
	}
	return result, nil
}

// Run plays rounds until n are done or the context ends.
func (a *Arena) Run(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := a.RunRound(); err != nil {
			return err
		}
	}
	if a.renderer != nil {
		a.printTotals()
	}
	return nil
}

// Serve plays one round per start request until the context ends.
func (a *Arena) Serve(ctx context.Context, starts <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-starts:
			if _, err := a.RunRound(); err != nil {
				return err
			}
		}
	}
}

func (a *Arena) printTotals() {
	totals := a.board.Totals()
	a.renderer.Header("总积分")
	for seat, name := range a.names {
		a.renderer.Printfln("  %s: %+d", name, totals[seat])
	}
}
