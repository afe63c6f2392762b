package engine

// Phase is the hand lifecycle state.
type Phase uint8

const (
	PhaseWaiting Phase = iota
	PhaseDealing
	PhasePreflopBetting
	PhaseFlop
	PhaseFlopBetting
	PhaseTurn
	PhaseTurnBetting
	PhaseRiver
	PhaseRiverBetting
	PhaseShowdown
	PhaseSettlement
	PhaseFinished
)

var phaseNames = [...]string{
	"waiting",
	"dealing",
	"preflop_betting",
	"flop",
	"flop_betting",
	"turn",
	"turn_betting",
	"river",
	"river_betting",
	"showdown",
	"settlement",
	"finished",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// IsBetting reports whether the phase accepts player actions.
func (p Phase) IsBetting() bool {
	switch p {
	case PhasePreflopBetting, PhaseFlopBetting, PhaseTurnBetting, PhaseRiverBetting:
		return true
	}
	return false
}

// nextBetting maps a deal phase to the betting phase that follows it.
func (p Phase) nextBetting() Phase {
	switch p {
	case PhaseFlop:
		return PhaseFlopBetting
	case PhaseTurn:
		return PhaseTurnBetting
	case PhaseRiver:
		return PhaseRiverBetting
	}
	return p
}
