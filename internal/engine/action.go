package engine

import (
	"fmt"
	"time"
)

// ActionType is the closed set of betting actions a seat may take.
type ActionType uint8

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a ActionType) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case AllIn:
		return "allin"
	default:
		return "unknown"
	}
}

// ParseActionType parses the wire form of an action type.
func ParseActionType(s string) (ActionType, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	case "allin", "all_in", "all-in":
		return AllIn, nil
	}
	return Fold, fmt.Errorf("unknown action %q", s)
}

// Action is one discrete betting request attributed to a seat. Amount is the
// total this-round commitment for Bet/Raise and ignored otherwise.
type Action struct {
	Type   ActionType
	Amount int
	At     time.Time
}

// LegalAction describes one permitted action for the seat to act, with the
// inclusive amount bounds where an amount applies.
type LegalAction struct {
	Type ActionType
	Min  int
	Max  int
}
