package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/landlord/event"
	"github.com/ratel-online/landlord/landlord/game"
)

// Table is the read side of a game the renderer needs besides the events.
type Table interface {
	Players() []*game.Player
	State() *game.State
}

// Renderer prints a round to a terminal as its events arrive.
type Renderer struct {
	out   io.Writer
	delay time.Duration
	table Table
}

func NewRenderer(out io.Writer, delay time.Duration, table Table) *Renderer {
	if out == nil {
		out = Stdout
	}
	return &Renderer{out: out, delay: delay, table: table}
}

func (r *Renderer) Printfln(format string, args ...interface{}) {
	r.Println(fmt.Sprintf(format, args...))
}

func (r *Renderer) Println(args ...interface{}) {
	fmt.Fprintln(r.out, args...)
}

func (r *Renderer) pause(d time.Duration) {
	if r.delay > 0 && d > 0 {
		time.Sleep(d)
	}
}

func (r *Renderer) Header(title string) {
	line := strings.Repeat("═", 60)
	r.Println()
	r.Println(yellow(line))
	r.Println(yellow("  " + title))
	r.Println(yellow(line))
}

func (r *Renderer) player(seat int) *game.Player {
	return r.table.Players()[seat]
}

func (r *Renderer) OnEvent(e event.Event) {
	switch e := e.(type) {
	case event.PhaseChanged:
		r.phaseChanged(e)
	case event.BidPlaced:
		if e.Value == 0 {
			r.Printfln("  %s: %s", paintPlayer(r.player(e.Seat())), dim("不叫"))
		} else {
			r.Printfln("  %s: %s", paintPlayer(r.player(e.Seat())), yellow(fmt.Sprintf("叫 %d 分！", e.Value)))
		}
		r.pause(r.delay / 2)
	case event.LandlordAssigned:
		landlord := r.player(e.Seat())
		r.Println()
		if e.Forced {
			r.Println("  三人都不叫，由首位叫分者坐庄")
		}
		r.Printfln("  🎉 %s 成为地主！叫分 %d", paintPlayer(landlord), e.Bid)
		r.Printfln("  底牌亮出: %s", paintCards(e.Bottom))
		r.Printfln("  地主手牌 (%d张): %s", landlord.HandSize(), paintCards(landlord.Cards()))
		r.pause(r.delay)
	case event.HandPlayed:
		r.Printfln("  %s 出牌 [%s]: %s  (剩余%d张)",
			paintPlayer(r.player(e.Seat())), e.Hand.Kind.DisplayName(), paintCards(e.Hand.Cards), e.Remaining)
		if e.Hand.IsBombLike() {
			r.pause(r.delay * 3 / 2)
		} else {
			r.pause(r.delay)
		}
	case event.Passed:
		r.Printfln("  %s: %s", paintPlayer(r.player(e.Seat())), dim("不出"))
		r.pause(r.delay / 2)
	case event.RoundSettled:
		r.settled(e)
	}
}

func (r *Renderer) phaseChanged(e event.PhaseChanged) {
	switch e.Phase() {
	case consts.PhaseBidding:
		r.Header("🃏 发牌完成")
		for _, p := range r.table.Players() {
			r.Printfln("  %s (%d张): %s", paintPlayer(p), p.HandSize(), paintCards(p.Cards()))
		}
		r.Println()
		r.Printfln("  %s", magenta("底牌: "+paintCards(r.table.State().Bottom)))
		r.Header("📢 叫地主阶段")
		r.pause(r.delay)
	case consts.PhasePlaying:
		r.Header("🎴 出牌阶段")
	}
}

func (r *Renderer) settled(e event.RoundSettled) {
	r.Header("🏆 游戏结束")
	winner := r.player(e.Winner)
	side := "农民"
	if e.LandlordWon() {
		side = "地主"
	}
	r.Printfln("  胜利方: %s (%s方获胜)", paintPlayer(winner), side)
	if e.Spring {
		r.Println("  " + boldRed("🌸 春天！农民一张没出！"))
	} else if e.AntiSpring {
		r.Println("  " + boldRed("🌸 反春天！地主只出了一手！"))
	}
	if e.BombCount > 0 {
		r.Printfln("  炸弹/火箭数: %d", e.BombCount)
	}
	r.Printfln("  叫分: %d  最终倍数: %d", r.table.State().HighestBid, e.Multiplier)
	r.Println("  " + strings.Repeat("─", 40))
	for seat, p := range r.table.Players() {
		r.Printfln("  %-10s %-6s %+d  (累计 %d)", p.Name, p.Role.DisplayName(), e.Deltas[seat], e.Scores[seat])
	}
	r.Println()
}
