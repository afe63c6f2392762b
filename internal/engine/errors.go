package engine

import (
	"errors"
	"fmt"
)

// ErrInsufficientPlayers is returned when a hand cannot start because fewer
// than two seats are eligible to play.
var ErrInsufficientPlayers = errors.New("not enough eligible players to start a hand")

// InvalidActionError rejects an action taken out of turn, in the wrong
// phase, or of a type the seat may not use. State is left unchanged.
type InvalidActionError struct {
	Position int
	Action   ActionType
	Reason   string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %s from seat %d: %s", e.Action, e.Position, e.Reason)
}

// InvalidAmountError rejects a bet, raise, or call whose amount falls
// outside the legal bounds for the acting seat.
type InvalidAmountError struct {
	Action ActionType
	Amount int
	Min    int
	Max    int
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid %s amount %d: must be between %d and %d", e.Action, e.Amount, e.Min, e.Max)
}

// InvalidPhaseTransitionError signals internal misuse of the state machine,
// such as settling a game that is not in settlement.
type InvalidPhaseTransitionError struct {
	From Phase
	To   Phase
}

func (e *InvalidPhaseTransitionError) Error() string {
	return fmt.Sprintf("invalid phase transition %s -> %s", e.From, e.To)
}

// ChipConservationError reports a breach of the chip-conservation
// invariant. It indicates a defect in the engine and is never retried.
type ChipConservationError struct {
	GameID   string
	Expected int
	Got      int
}

func (e *ChipConservationError) Error() string {
	return fmt.Sprintf("chip conservation violated in game %s: expected %d chips, found %d", e.GameID, e.Expected, e.Got)
}
