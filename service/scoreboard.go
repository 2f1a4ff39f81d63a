package service

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/awesome-cap/hashmap"
	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/landlord/game"
	"github.com/ratel-online/landlord/model"
)

var recordIds int64 = 0

// records holds the kept rounds of every scoreboard, keyed by a process wide record id.
var records = hashmap.New()

// Record is one settled round as the scoreboard keeps it.
type Record struct {
	ID     int64
	Round  int
	Names  [consts.Seats]string
	Result game.Result
}

func (r *Record) String() string {
	outcome := "农民胜"
	if r.Result.LandlordWon() {
		outcome = "地主胜"
	}
	text := fmt.Sprintf("#%d 地主 %s %s x%d", r.Round, r.Names[r.Result.Landlord], outcome, r.Result.Multiplier)
	if r.Result.Spring {
		text += " 春天"
	} else if r.Result.AntiSpring {
		text += " 反春"
	}
	return text
}

// Scoreboard keeps the most recent rounds and the running totals of every seat.
type Scoreboard struct {
	sync.Mutex
	size   int
	ids    []int64
	played int
	names  [consts.Seats]string
	totals [consts.Seats]int
}

func NewScoreboard(size int) *Scoreboard {
	if size <= 0 {
		size = consts.ScoreboardSize
	}
	return &Scoreboard{size: size, ids: make([]int64, 0, size)}
}

// Add records a settled round. The oldest record is dropped once the board is full.
func (s *Scoreboard) Add(names []string, result game.Result) *Record {
	s.Lock()
	defer s.Unlock()
	s.played++
	record := &Record{
		ID:     atomic.AddInt64(&recordIds, 1),
		Round:  s.played,
		Result: result,
	}
	for seat := range s.totals {
		if seat < len(names) {
			s.names[seat] = names[seat]
		}
		s.totals[seat] += result.Deltas[seat]
	}
	record.Names = s.names
	records.Set(record.ID, record)
	s.ids = append(s.ids, record.ID)
	if len(s.ids) > s.size {
		records.Del(s.ids[0])
		s.ids = s.ids[1:]
	}
	return record
}

func getRecord(id int64) *Record {
	if v, ok := records.Get(id); ok {
		return v.(*Record)
	}
	return nil
}

// Records returns the kept rounds, oldest first.
func (s *Scoreboard) Records() []*Record {
	s.Lock()
	defer s.Unlock()
	list := make([]*Record, 0, len(s.ids))
	for _, id := range s.ids {
		if record := getRecord(id); record != nil {
			list = append(list, record)
		}
	}
	return list
}

func (s *Scoreboard) Played() int {
	s.Lock()
	defer s.Unlock()
	return s.played
}

func (s *Scoreboard) Totals() [consts.Seats]int {
	s.Lock()
	defer s.Unlock()
	return s.totals
}

// Close forgets the kept rounds.
func (s *Scoreboard) Close() {
	s.Lock()
	defer s.Unlock()
	for _, id := range s.ids {
		records.Del(id)
	}
	s.ids = s.ids[:0]
}

// Summary is the live view message for the board.
func (s *Scoreboard) Summary() model.Rounds {
	list := s.Records()
	s.Lock()
	defer s.Unlock()
	summary := model.Rounds{
		Type:   model.TypeRounds,
		Played: s.played,
		Totals: make([]model.Score, 0, consts.Seats),
		Recent: make([]string, 0, consts.RecentRounds),
	}
	for seat := range s.totals {
		summary.Totals = append(summary.Totals, model.Score{
			Name:  s.names[seat],
			Score: s.totals[seat],
		})
	}
	if len(list) > consts.RecentRounds {
		list = list[len(list)-consts.RecentRounds:]
	}
	for i := len(list) - 1; i >= 0; i-- {
		summary.Recent = append(summary.Recent, list[i].String())
	}
	return summary
}
