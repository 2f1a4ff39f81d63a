package game

import (
	"github.com/ratel-online/landlord/consts"
)

// Multiplier is max(bid, 1) doubled once per bomb or rocket and once more for a spring or anti-spring.
func Multiplier(highestBid, bombCount int, spring bool) int {
	m := highestBid
	if m < 1 {
		m = 1
	}
	m <<= uint(bombCount)
	if spring {
		m *= 2
	}
	return m
}

// Deltas splits the stake: the landlord wins or loses twice the multiplier, each farmer the multiplier.
func Deltas(landlord int, landlordWon bool, multiplier int) [consts.Seats]int {
	var deltas [consts.Seats]int
	sign := 1
	if !landlordWon {
		sign = -1
	}
	for seat := range deltas {
		if seat == landlord {
			deltas[seat] = sign * 2 * multiplier
		} else {
			deltas[seat] = -sign * multiplier
		}
	}
	return deltas
}
