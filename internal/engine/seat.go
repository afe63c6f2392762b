package engine

import "github.com/cardroomhq/cardroom/internal/poker"

// SeatStatus is a seat's standing within the current hand.
type SeatStatus uint8

const (
	SeatActive SeatStatus = iota
	SeatFolded
	SeatAllIn
	SeatSittingOut
)

func (s SeatStatus) String() string {
	switch s {
	case SeatActive:
		return "ACTIVE"
	case SeatFolded:
		return "FOLDED"
	case SeatAllIn:
		return "ALL_IN"
	case SeatSittingOut:
		return "SITTING_OUT"
	default:
		return "UNKNOWN"
	}
}

// Seat is one player's participation in a game. It is owned by the Game and
// only mutated inside the game's single-writer region.
type Seat struct {
	PlayerID  string
	Name      string
	Position  int // clockwise seat index, 0-based
	Stack     int
	Status    SeatStatus
	HoleCards poker.Hand
	Bet       int // committed this betting round
	IsBot     bool

	// BuyIn is the stack the player sat down with; win/loss in the game
	// summary is measured against it.
	BuyIn int
}

// InHand reports whether the seat still has a claim on the pot.
func (s *Seat) InHand() bool {
	return s.Status == SeatActive || s.Status == SeatAllIn
}

// CanAct reports whether the seat can take a betting action.
func (s *Seat) CanAct() bool {
	return s.Status == SeatActive
}

// commit moves up to amount chips from the stack into the seat's round bet,
// returning the chips actually moved. The seat goes all-in when drained.
func (s *Seat) commit(amount int) int {
	if amount > s.Stack {
		amount = s.Stack
	}
	s.Stack -= amount
	s.Bet += amount
	if s.Stack == 0 && s.Status == SeatActive {
		s.Status = SeatAllIn
	}
	return amount
}
