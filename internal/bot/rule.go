// Package bot implements rule-based deciders plugged into the engine's
// decision port. The engine itself carries no strategy.
package bot

import (
	"context"
	"math/rand"
	"strings"

	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/poker"
)

// Style shifts how often a bot bets and raises instead of calling.
type Style uint8

const (
	StyleBalanced Style = iota
	StyleConservative
	StyleAggressive
	StyleCaller
	StyleRandom
)

// ParseStyle resolves a style name, defaulting to balanced.
func ParseStyle(name string) Style {
	switch strings.ToLower(name) {
	case "conservative", "tight":
		return StyleConservative
	case "aggressive", "aggro":
		return StyleAggressive
	case "caller", "station":
		return StyleCaller
	case "random":
		return StyleRandom
	default:
		return StyleBalanced
	}
}

// New builds the decider for a style. The caller and random styles get
// their own strategies; everything else is a rule bot tuned by style.
func New(style Style, rng *rand.Rand) engine.Decider {
	switch style {
	case StyleCaller:
		return &CallingBot{}
	case StyleRandom:
		return &RandomBot{rng: rng}
	default:
		return NewRuleBot(style, rng)
	}
}

// RuleBot is a deterministic-strategy decider driven by hole card strength
// and pot odds, with style-dependent aggression. Safe for one goroutine;
// give each seat its own.
type RuleBot struct {
	style Style
	rng   *rand.Rand
}

// NewRuleBot creates a rule bot with the given style and randomness
// source.
func NewRuleBot(style Style, rng *rand.Rand) *RuleBot {
	return &RuleBot{style: style, rng: rng}
}

// Decide picks an action from the legal set. It never returns an error;
// with nothing better to do it checks or folds.
func (b *RuleBot) Decide(_ context.Context, req engine.DecisionRequest) (engine.Action, error) {
	strength := b.strength(req)
	toCall := b.callCost(req.Legal)

	canCheck := has(req.Legal, engine.Check)

	// Free to check and nothing worth betting: take the free card.
	if canCheck && strength < b.betThreshold() {
		return engine.Action{Type: engine.Check}, nil
	}

	if strength >= b.raiseThreshold() && b.rng.Float64() < b.aggression() {
		if act, ok := b.openOrRaise(req); ok {
			return act, nil
		}
	}

	if canCheck {
		return engine.Action{Type: engine.Check}, nil
	}

	// Facing a bet the stack cannot cover: all-in or fold on strength.
	if toCall == 0 {
		if strength >= 0.8 && has(req.Legal, engine.AllIn) {
			return engine.Action{Type: engine.AllIn}, nil
		}
		return engine.Action{Type: engine.Fold}, nil
	}

	// Call when the price is right for the hand's strength.
	odds := float64(toCall) / float64(req.View.Pot+toCall)
	if strength >= odds {
		return engine.Action{Type: engine.Call}, nil
	}
	return engine.Action{Type: engine.Fold}, nil
}

// strength scores the holding in [0,1]. Preflop it comes from the hole
// category; postflop from the made hand on the board so far.
func (b *RuleBot) strength(req engine.DecisionRequest) float64 {
	hole := req.Hole.Cards()
	if len(hole) != 2 {
		return 0
	}

	if len(req.View.CommunityCards) == 0 {
		switch poker.CategorizeHole(hole[0], hole[1]) {
		case poker.HolePremium:
			return 0.95
		case poker.HoleStrong:
			return 0.8
		case poker.HoleMedium:
			return 0.55
		case poker.HoleWeak:
			return 0.35
		default:
			return 0.1
		}
	}

	cards := req.Hole
	for _, s := range req.View.CommunityCards {
		cards.Add(poker.MustParseCard(s))
	}
	switch poker.Evaluate(cards).Category() {
	case poker.HighCard:
		return 0.15
	case poker.Pair:
		return 0.4
	case poker.TwoPair:
		return 0.65
	case poker.ThreeOfAKind:
		return 0.8
	default:
		return 0.95
	}
}

// openOrRaise sizes a bet or raise around two thirds of the pot, clamped
// to the legal bounds.
func (b *RuleBot) openOrRaise(req engine.DecisionRequest) (engine.Action, bool) {
	for _, la := range req.Legal {
		if la.Type != engine.Bet && la.Type != engine.Raise {
			continue
		}
		amount := la.Min + (req.View.Pot*2)/3
		if amount > la.Max {
			amount = la.Max
		}
		if amount < la.Min {
			amount = la.Min
		}
		return engine.Action{Type: la.Type, Amount: amount}, true
	}
	return engine.Action{}, false
}

func (b *RuleBot) callCost(legal []engine.LegalAction) int {
	for _, la := range legal {
		if la.Type == engine.Call {
			return la.Min
		}
	}
	return 0
}

func (b *RuleBot) aggression() float64 {
	switch b.style {
	case StyleConservative:
		return 0.3
	case StyleAggressive:
		return 0.85
	default:
		return 0.6
	}
}

func (b *RuleBot) betThreshold() float64 {
	if b.style == StyleAggressive {
		return 0.3
	}
	return 0.5
}

func (b *RuleBot) raiseThreshold() float64 {
	switch b.style {
	case StyleConservative:
		return 0.75
	case StyleAggressive:
		return 0.5
	default:
		return 0.6
	}
}

func has(legal []engine.LegalAction, t engine.ActionType) bool {
	for _, la := range legal {
		if la.Type == t {
			return true
		}
	}
	return false
}
