package ui

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/landlord/game"
)

var Stdout io.Writer = color.Output

var (
	red     = color.New(color.FgHiRed).SprintFunc()
	boldRed = color.New(color.FgHiRed, color.Bold).SprintFunc()
	cyan    = color.New(color.FgHiCyan).SprintFunc()
	green   = color.New(color.FgHiGreen, color.Bold).SprintFunc()
	yellow  = color.New(color.FgHiYellow, color.Bold).SprintFunc()
	magenta = color.New(color.FgHiMagenta).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
)

func paintCard(c card.Card) string {
	switch {
	case c.Rank == card.RankBigJoker:
		return boldRed(c.String())
	case c.Rank == card.RankSmallJoker:
		return cyan(c.String())
	case c.Suit.Red():
		return red(c.String())
	}
	return c.String()
}

func paintCards(cards []card.Card) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, paintCard(c))
	}
	return strings.Join(parts, " ")
}

func paintPlayer(p *game.Player) string {
	switch p.Role {
	case game.RoleLandlord:
		return boldRed(p.Name + " [地主👑]")
	case game.RoleFarmer:
		return green(p.Name + " [农民🌾]")
	}
	return dim(p.Name)
}
