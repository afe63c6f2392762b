// Package statistics aggregates per-seat results across a session of
// hands, normalised to big blinds so runs at different stakes compare.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// HandOutcome is one seat's result for one completed hand.
type HandOutcome struct {
	Seat           int
	NetChips       int
	WentToShowdown bool
	PotChips       int
}

// SeatStats accumulates one seat's results.
type SeatStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
	Values []float64

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64
}

// Tracker aggregates outcomes for every seat in a session.
type Tracker struct {
	bigBlind int
	seats    map[int]*SeatStats

	MaxPotChips int
}

// NewTracker creates a tracker for a session at the given big blind.
func NewTracker(bigBlind int) *Tracker {
	return &Tracker{
		bigBlind: bigBlind,
		seats:    make(map[int]*SeatStats),
	}
}

// Record incorporates one seat's hand outcome.
func (t *Tracker) Record(o HandOutcome) {
	s := t.seats[o.Seat]
	if s == nil {
		s = &SeatStats{}
		t.seats[o.Seat] = s
	}

	netBB := float64(o.NetChips) / float64(t.bigBlind)
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if o.WentToShowdown {
		s.ShowdownBB += netBB
		if o.NetChips > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += netBB
		if o.NetChips > 0 {
			s.NonShowdownWins++
		}
	}

	if o.PotChips > t.MaxPotChips {
		t.MaxPotChips = o.PotChips
	}
}

// Seat returns the stats for one seat, or nil if it never recorded a hand.
func (t *Tracker) Seat(seat int) *SeatStats {
	return t.seats[seat]
}

// Seats returns the recorded seat numbers in ascending order.
func (t *Tracker) Seats() []int {
	out := make([]int, 0, len(t.seats))
	for seat := range t.seats {
		out = append(out, seat)
	}
	sort.Ints(out)
	return out
}

// Validate checks the tracker's internal accounting. Chips move between
// seats, so session totals must cancel out.
func (t *Tracker) Validate() error {
	total := 0.0
	for seat, s := range t.seats {
		if len(s.Values) != s.Hands {
			return fmt.Errorf("seat %d: %d values for %d hands", seat, len(s.Values), s.Hands)
		}
		if diff := s.SumBB - s.ShowdownBB - s.NonShowdownBB; math.Abs(diff) > 1e-6 {
			return fmt.Errorf("seat %d: ledger mismatch of %.6f bb", seat, diff)
		}
		total += s.SumBB
	}
	if math.Abs(total) > 1e-6 {
		return fmt.Errorf("session does not balance: %.6f bb unaccounted", total)
	}
	return nil
}

// Mean returns the average result in big blinds per hand.
func (s *SeatStats) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of the per-hand results.
func (s *SeatStats) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation.
func (s *SeatStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *SeatStats) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *SeatStats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median per-hand result.
func (s *SeatStats) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
