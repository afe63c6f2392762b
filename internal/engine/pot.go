package engine

import "sort"

// PotLayer is one slice of the pot: the chips contributed between two
// all-in thresholds, and the seats that can win them.
type PotLayer struct {
	Amount   int
	Eligible []int // seat positions, ascending
	Cap      int   // contribution threshold this layer tops out at
}

// PotManager tracks cumulative per-seat contributions for a hand and
// partitions them into main and side pots at all-in boundaries. Folded
// seats keep funding every layer they reached but are never eligible.
type PotManager struct {
	contributions map[int]int
}

// NewPotManager creates an empty pot.
func NewPotManager() *PotManager {
	return &PotManager{contributions: make(map[int]int)}
}

// Collect folds a seat's round bet into its hand contribution. The engine
// calls this when a betting round closes.
func (pm *PotManager) Collect(position, amount int) {
	if amount > 0 {
		pm.contributions[position] += amount
	}
}

// Total returns all chips contributed so far.
func (pm *PotManager) Total() int {
	total := 0
	for _, c := range pm.contributions {
		total += c
	}
	return total
}

// Contribution returns the chips a seat has put in this hand.
func (pm *PotManager) Contribution(position int) int {
	return pm.contributions[position]
}

// Layers partitions contributions into ordered pot layers. Thresholds are
// the distinct all-in contribution levels among non-folded seats, plus the
// top contribution level; layer i holds, from every seat, the chips between
// threshold i-1 and threshold i, and is winnable by non-folded seats that
// reached threshold i.
func (pm *PotManager) Layers(seats []*Seat) []PotLayer {
	thresholds := pm.thresholds(seats)
	if len(thresholds) == 0 {
		return nil
	}

	layers := make([]PotLayer, 0, len(thresholds))
	prev := 0
	for _, t := range thresholds {
		layer := PotLayer{Cap: t}
		for _, c := range pm.contributions {
			layer.Amount += min(c, t) - min(c, prev)
		}
		for _, s := range seats {
			if s.InHand() && pm.contributions[s.Position] >= t {
				layer.Eligible = append(layer.Eligible, s.Position)
			}
		}
		sort.Ints(layer.Eligible)
		if layer.Amount > 0 {
			layers = append(layers, layer)
		}
		prev = t
	}
	return layers
}

// thresholds returns the ascending distinct contribution tiers that bound
// pot layers.
func (pm *PotManager) thresholds(seats []*Seat) []int {
	distinct := make(map[int]bool)
	top := 0
	for _, s := range seats {
		c := pm.contributions[s.Position]
		if !s.InHand() {
			continue
		}
		if s.Status == SeatAllIn && c > 0 {
			distinct[c] = true
		}
		if c > top {
			top = c
		}
	}
	if top > 0 {
		distinct[top] = true
	}

	out := make([]int, 0, len(distinct))
	for t := range distinct {
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}
