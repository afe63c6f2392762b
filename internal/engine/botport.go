package engine

import (
	"context"
	"time"

	"github.com/coder/quartz"

	"github.com/cardroomhq/cardroom/internal/poker"
)

// DecisionRequest is everything a decider may consider: the public game
// view, the seat's private hole cards, and the legal actions with bounds.
type DecisionRequest struct {
	GameID   string
	Position int
	Hole     poker.Hand
	Legal    []LegalAction
	View     GameView
}

// Decider chooses a bot's action. Implementations live outside the engine;
// the engine only knows this capability.
type Decider interface {
	Decide(ctx context.Context, req DecisionRequest) (Action, error)
}

// DefaultAction is what a seat does when its turn clock runs out: check
// when checking is free, otherwise fold.
func DefaultAction(legal []LegalAction) Action {
	for _, la := range legal {
		if la.Type == Check {
			return Action{Type: Check}
		}
	}
	return Action{Type: Fold}
}

// RequestDecision asks the decider for an action, waiting at most budget.
// A timeout, cancellation, error, or illegal choice yields DefaultAction.
// The clock is injectable so tests can drive the timeout deterministically.
func RequestDecision(ctx context.Context, clock quartz.Clock, d Decider, req DecisionRequest, budget time.Duration) Action {
	done := make(chan Action, 1)
	go func() {
		act, err := d.Decide(ctx, req)
		if err != nil || !legalChoice(req.Legal, act) {
			act = DefaultAction(req.Legal)
		}
		done <- act
	}()

	timer := clock.NewTimer(budget)
	defer timer.Stop()

	select {
	case act := <-done:
		return act
	case <-timer.C:
		return DefaultAction(req.Legal)
	case <-ctx.Done():
		return DefaultAction(req.Legal)
	}
}

// legalChoice reports whether the action is in the legal set with an amount
// inside its bounds.
func legalChoice(legal []LegalAction, act Action) bool {
	for _, la := range legal {
		if la.Type != act.Type {
			continue
		}
		if la.Type == Bet || la.Type == Raise {
			return act.Amount >= la.Min && act.Amount <= la.Max
		}
		return true
	}
	return false
}
