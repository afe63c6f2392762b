package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coder/quartz"
)

type deciderFunc func(ctx context.Context, req DecisionRequest) (Action, error)

func (f deciderFunc) Decide(ctx context.Context, req DecisionRequest) (Action, error) {
	return f(ctx, req)
}

func TestDefaultAction(t *testing.T) {
	t.Parallel()

	free := []LegalAction{{Type: Fold}, {Type: Check}, {Type: Bet, Min: 10, Max: 100}}
	if act := DefaultAction(free); act.Type != Check {
		t.Errorf("Default with a free check = %s, want check", act.Type)
	}

	facing := []LegalAction{{Type: Fold}, {Type: Call, Min: 50, Max: 50}}
	if act := DefaultAction(facing); act.Type != Fold {
		t.Errorf("Default facing a bet = %s, want fold", act.Type)
	}
}

func TestRequestDecisionReturnsChoice(t *testing.T) {
	t.Parallel()

	req := DecisionRequest{
		Legal: []LegalAction{{Type: Fold}, {Type: Call, Min: 50, Max: 50}, {Type: Raise, Min: 100, Max: 500}},
	}
	d := deciderFunc(func(context.Context, DecisionRequest) (Action, error) {
		return Action{Type: Raise, Amount: 150}, nil
	})

	act := RequestDecision(context.Background(), quartz.NewReal(), d, req, time.Second)
	if act.Type != Raise || act.Amount != 150 {
		t.Errorf("Got %s %d, want raise 150", act.Type, act.Amount)
	}
}

func TestRequestDecisionTimeout(t *testing.T) {
	t.Parallel()

	mock := quartz.NewMock(t)
	trap := mock.Trap().NewTimer()
	defer trap.Close()

	ctx := context.Background()
	req := DecisionRequest{
		Legal: []LegalAction{{Type: Fold}, {Type: Check}},
	}
	blocked := deciderFunc(func(ctx context.Context, _ DecisionRequest) (Action, error) {
		<-ctx.Done()
		return Action{}, ctx.Err()
	})

	result := make(chan Action, 1)
	go func() {
		result <- RequestDecision(ctx, mock, blocked, req, 15*time.Second)
	}()

	trap.MustWait(ctx).MustRelease(ctx)
	mock.Advance(15 * time.Second).MustWait(ctx)

	if act := <-result; act.Type != Check {
		t.Errorf("Timed out decision = %s, want the default check", act.Type)
	}
}

func TestRequestDecisionIllegalChoiceFallsBack(t *testing.T) {
	t.Parallel()

	req := DecisionRequest{
		Legal: []LegalAction{{Type: Fold}, {Type: Call, Min: 50, Max: 50}, {Type: Raise, Min: 100, Max: 500}},
	}

	// Not in the legal set.
	d := deciderFunc(func(context.Context, DecisionRequest) (Action, error) {
		return Action{Type: Check}, nil
	})
	if act := RequestDecision(context.Background(), quartz.NewReal(), d, req, time.Second); act.Type != Fold {
		t.Errorf("Illegal check resolved to %s, want fold", act.Type)
	}

	// Legal type, amount out of bounds.
	d = deciderFunc(func(context.Context, DecisionRequest) (Action, error) {
		return Action{Type: Raise, Amount: 99}, nil
	})
	if act := RequestDecision(context.Background(), quartz.NewReal(), d, req, time.Second); act.Type != Fold {
		t.Errorf("Undersized raise resolved to %s, want fold", act.Type)
	}
}

func TestRequestDecisionErrorFallsBack(t *testing.T) {
	t.Parallel()

	req := DecisionRequest{
		Legal: []LegalAction{{Type: Fold}, {Type: Check}},
	}
	d := deciderFunc(func(context.Context, DecisionRequest) (Action, error) {
		return Action{}, errors.New("decider broke")
	})

	if act := RequestDecision(context.Background(), quartz.NewReal(), d, req, time.Second); act.Type != Check {
		t.Errorf("Errored decision = %s, want the default check", act.Type)
	}
}

func TestRequestDecisionCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	req := DecisionRequest{
		Legal: []LegalAction{{Type: Fold}, {Type: Call, Min: 10, Max: 10}},
	}
	blocked := deciderFunc(func(ctx context.Context, _ DecisionRequest) (Action, error) {
		<-ctx.Done()
		return Action{}, ctx.Err()
	})

	result := make(chan Action, 1)
	go func() {
		result <- RequestDecision(ctx, quartz.NewReal(), blocked, req, time.Minute)
	}()
	cancel()

	if act := <-result; act.Type != Fold {
		t.Errorf("Cancelled decision = %s, want fold", act.Type)
	}
}
