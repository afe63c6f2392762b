package bot

import (
	"context"
	"math/rand"

	"github.com/cardroomhq/cardroom/internal/engine"
)

// CallingBot checks when it can and calls any price when it cannot. A
// calling station is the baseline opponent for measuring other strategies.
type CallingBot struct{}

// Decide never bets or raises.
func (c *CallingBot) Decide(_ context.Context, req engine.DecisionRequest) (engine.Action, error) {
	if has(req.Legal, engine.Check) {
		return engine.Action{Type: engine.Check}, nil
	}
	if has(req.Legal, engine.Call) {
		return engine.Action{Type: engine.Call}, nil
	}
	// Facing a bet the stack cannot cover.
	if has(req.Legal, engine.AllIn) {
		return engine.Action{Type: engine.AllIn}, nil
	}
	return engine.Action{Type: engine.Fold}, nil
}

// RandomBot picks uniformly from the legal actions, with a uniform amount
// inside the bounds for bets and raises. Useful for fuzzing the rules.
type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot creates a random bot with the given randomness source.
func NewRandomBot(rng *rand.Rand) *RandomBot {
	return &RandomBot{rng: rng}
}

func (r *RandomBot) Decide(_ context.Context, req engine.DecisionRequest) (engine.Action, error) {
	if len(req.Legal) == 0 {
		return engine.Action{Type: engine.Fold}, nil
	}

	la := req.Legal[r.rng.Intn(len(req.Legal))]
	act := engine.Action{Type: la.Type}
	if la.Type == engine.Bet || la.Type == engine.Raise {
		act.Amount = la.Min
		if la.Max > la.Min {
			act.Amount += r.rng.Intn(la.Max - la.Min + 1)
		}
	}
	return act, nil
}
