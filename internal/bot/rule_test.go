package bot

import (
	"context"
	"math/rand"
	"testing"

	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/poker"
)

func TestParseStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want Style
	}{
		{"balanced", StyleBalanced},
		{"conservative", StyleConservative},
		{"tight", StyleConservative},
		{"aggressive", StyleAggressive},
		{"AGGRO", StyleAggressive},
		{"", StyleBalanced},
		{"unknown", StyleBalanced},
	}
	for _, tt := range tests {
		if got := ParseStyle(tt.name); got != tt.want {
			t.Errorf("ParseStyle(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func hole(t *testing.T, a, b string) poker.Hand {
	t.Helper()
	return poker.NewHand(poker.MustParseCard(a), poker.MustParseCard(b))
}

func TestTrashFoldsToABet(t *testing.T) {
	t.Parallel()

	b := NewRuleBot(StyleBalanced, rand.New(rand.NewSource(1)))
	req := engine.DecisionRequest{
		Hole: hole(t, "7c", "2d"),
		Legal: []engine.LegalAction{
			{Type: engine.Fold},
			{Type: engine.Call, Min: 50, Max: 50},
			{Type: engine.Raise, Min: 100, Max: 1000},
		},
		View: engine.GameView{Pot: 100},
	}

	act, err := b.Decide(context.Background(), req)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if act.Type != engine.Fold {
		t.Errorf("Trash facing a bet chose %s, want fold", act.Type)
	}
}

func TestWeakHandChecksWhenFree(t *testing.T) {
	t.Parallel()

	b := NewRuleBot(StyleBalanced, rand.New(rand.NewSource(1)))
	req := engine.DecisionRequest{
		Hole: hole(t, "6h", "5h"),
		Legal: []engine.LegalAction{
			{Type: engine.Fold},
			{Type: engine.Check},
			{Type: engine.Bet, Min: 10, Max: 1000},
		},
		View: engine.GameView{Pot: 15},
	}

	act, err := b.Decide(context.Background(), req)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if act.Type != engine.Check {
		t.Errorf("Weak hand with a free check chose %s, want check", act.Type)
	}
}

func TestPremiumRaisesPreflop(t *testing.T) {
	t.Parallel()

	// Seed 1's first draw is below the aggressive rate, so the raise line
	// is taken deterministically.
	b := NewRuleBot(StyleAggressive, rand.New(rand.NewSource(1)))
	req := engine.DecisionRequest{
		Hole: hole(t, "As", "Ad"),
		Legal: []engine.LegalAction{
			{Type: engine.Fold},
			{Type: engine.Call, Min: 10, Max: 10},
			{Type: engine.Raise, Min: 20, Max: 1000},
		},
		View: engine.GameView{Pot: 15},
	}

	act, err := b.Decide(context.Background(), req)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if act.Type != engine.Raise {
		t.Fatalf("Aces chose %s, want raise", act.Type)
	}
	if act.Amount < 20 || act.Amount > 1000 {
		t.Errorf("Raise amount %d outside legal bounds", act.Amount)
	}
}

func TestPremiumNeverFoldsPreflop(t *testing.T) {
	t.Parallel()

	// Whatever the aggression draw does, aces facing a normal raise end up
	// raising or calling.
	req := engine.DecisionRequest{
		Hole: hole(t, "Ah", "Ac"),
		Legal: []engine.LegalAction{
			{Type: engine.Fold},
			{Type: engine.Call, Min: 30, Max: 30},
			{Type: engine.Raise, Min: 60, Max: 1000},
		},
		View: engine.GameView{Pot: 45},
	}

	for seed := int64(0); seed < 50; seed++ {
		b := NewRuleBot(StyleBalanced, rand.New(rand.NewSource(seed)))
		act, err := b.Decide(context.Background(), req)
		if err != nil {
			t.Fatalf("Decide: %v", err)
		}
		if act.Type == engine.Fold {
			t.Fatalf("Aces folded with seed %d", seed)
		}
	}
}

func TestMediumHandCallsCheapBet(t *testing.T) {
	t.Parallel()

	b := NewRuleBot(StyleBalanced, rand.New(rand.NewSource(1)))
	req := engine.DecisionRequest{
		Hole: hole(t, "8s", "8d"),
		Legal: []engine.LegalAction{
			{Type: engine.Fold},
			{Type: engine.Call, Min: 10, Max: 10},
		},
		View: engine.GameView{Pot: 100},
	}

	act, err := b.Decide(context.Background(), req)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if act.Type != engine.Call {
		t.Errorf("Medium pair getting 11:1 chose %s, want call", act.Type)
	}
}

func TestFacingAllInOnlyChoice(t *testing.T) {
	t.Parallel()

	legal := []engine.LegalAction{
		{Type: engine.Fold},
		{Type: engine.AllIn, Min: 400, Max: 400},
	}

	b := NewRuleBot(StyleBalanced, rand.New(rand.NewSource(1)))
	strong := engine.DecisionRequest{
		Hole:  hole(t, "Ks", "Kd"),
		Legal: legal,
		View:  engine.GameView{Pot: 600},
	}
	act, err := b.Decide(context.Background(), strong)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if act.Type != engine.AllIn {
		t.Errorf("Kings facing a shove chose %s, want all_in", act.Type)
	}

	weak := engine.DecisionRequest{
		Hole:  hole(t, "9c", "4d"),
		Legal: legal,
		View:  engine.GameView{Pot: 600},
	}
	act, err = b.Decide(context.Background(), weak)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if act.Type != engine.Fold {
		t.Errorf("Nine-four facing a shove chose %s, want fold", act.Type)
	}
}

func TestPostflopUsesMadeHand(t *testing.T) {
	t.Parallel()

	// A bare pair on the board is below the balanced betting threshold, so
	// the bot checks behind.
	b := NewRuleBot(StyleBalanced, rand.New(rand.NewSource(1)))
	req := engine.DecisionRequest{
		Hole: hole(t, "Ah", "Kd"),
		Legal: []engine.LegalAction{
			{Type: engine.Fold},
			{Type: engine.Check},
			{Type: engine.Bet, Min: 10, Max: 1000},
		},
		View: engine.GameView{
			Pot:            60,
			CommunityCards: []string{"As", "7c", "2d"},
		},
	}

	act, err := b.Decide(context.Background(), req)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if act.Type != engine.Check {
		t.Errorf("One pair chose %s, want check", act.Type)
	}
}
