package bot

import (
	"context"
	"math/rand"
	"testing"

	"github.com/cardroomhq/cardroom/internal/engine"
)

func TestCallingBotNeverRaises(t *testing.T) {
	t.Parallel()

	b := &CallingBot{}

	free := engine.DecisionRequest{Legal: []engine.LegalAction{
		{Type: engine.Fold}, {Type: engine.Check}, {Type: engine.Bet, Min: 10, Max: 100},
	}}
	act, _ := b.Decide(context.Background(), free)
	if act.Type != engine.Check {
		t.Errorf("With a free check got %s, want check", act.Type)
	}

	facing := engine.DecisionRequest{Legal: []engine.LegalAction{
		{Type: engine.Fold}, {Type: engine.Call, Min: 80, Max: 80}, {Type: engine.Raise, Min: 160, Max: 500},
	}}
	act, _ = b.Decide(context.Background(), facing)
	if act.Type != engine.Call {
		t.Errorf("Facing a bet got %s, want call", act.Type)
	}

	shortStacked := engine.DecisionRequest{Legal: []engine.LegalAction{
		{Type: engine.Fold}, {Type: engine.AllIn, Min: 60, Max: 60},
	}}
	act, _ = b.Decide(context.Background(), shortStacked)
	if act.Type != engine.AllIn {
		t.Errorf("Covered by the bet got %s, want all_in", act.Type)
	}
}

func TestRandomBotStaysLegal(t *testing.T) {
	t.Parallel()

	b := NewRandomBot(rand.New(rand.NewSource(9)))
	legal := []engine.LegalAction{
		{Type: engine.Fold},
		{Type: engine.Call, Min: 20, Max: 20},
		{Type: engine.Raise, Min: 40, Max: 300},
	}

	for i := 0; i < 500; i++ {
		act, err := b.Decide(context.Background(), engine.DecisionRequest{Legal: legal})
		if err != nil {
			t.Fatalf("Decide: %v", err)
		}
		found := false
		for _, la := range legal {
			if la.Type != act.Type {
				continue
			}
			found = true
			if la.Type == engine.Raise && (act.Amount < la.Min || act.Amount > la.Max) {
				t.Fatalf("Raise amount %d outside [%d, %d]", act.Amount, la.Min, la.Max)
			}
		}
		if !found {
			t.Fatalf("Chose %s which is not legal", act.Type)
		}
	}
}

func TestNewFactorySelectsStrategy(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	if _, ok := New(StyleCaller, rng).(*CallingBot); !ok {
		t.Error("caller style should build a CallingBot")
	}
	if _, ok := New(StyleRandom, rng).(*RandomBot); !ok {
		t.Error("random style should build a RandomBot")
	}
	if _, ok := New(StyleAggressive, rng).(*RuleBot); !ok {
		t.Error("aggressive style should build a RuleBot")
	}
}
