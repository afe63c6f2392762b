package engine

// BettingRound holds the state of one betting round. Amounts for Bet and
// Raise are the seat's total commitment for the round, not the increment.
type BettingRound struct {
	CurrentBet    int
	LastRaiseSize int
	LastAggressor int
	BigBlind      int

	// acted marks seats that have acted at the current bet level. A full
	// raise clears everyone else's mark; a short all-in does not, which is
	// what keeps betting closed to seats that already acted.
	acted []bool
}

// NewBettingRound starts a fresh betting round for numSeats seats. Blind
// posts are not actions, so the blinds keep their turn to act.
func NewBettingRound(numSeats, bigBlind int) *BettingRound {
	return &BettingRound{
		LastRaiseSize: 0,
		LastAggressor: -1,
		BigBlind:      bigBlind,
		acted:         make([]bool, numSeats),
	}
}

// PostBlind commits a forced blind without consuming the seat's turn.
func (br *BettingRound) PostBlind(seat *Seat, amount int) {
	seat.commit(amount)
	if seat.Bet > br.CurrentBet {
		br.CurrentBet = seat.Bet
	}
}

// LegalActions returns the actions open to the seat, with amount bounds
// where an amount applies. An empty slice means the seat cannot act.
func (br *BettingRound) LegalActions(seat *Seat) []LegalAction {
	if !seat.CanAct() {
		return nil
	}

	actions := []LegalAction{{Type: Fold}}
	toCall := br.CurrentBet - seat.Bet
	maxTotal := seat.Bet + seat.Stack

	if toCall == 0 {
		actions = append(actions, LegalAction{Type: Check})
	} else if toCall < seat.Stack {
		actions = append(actions, LegalAction{Type: Call, Min: toCall, Max: toCall})
	}

	if br.CurrentBet == 0 {
		if maxTotal >= br.BigBlind {
			actions = append(actions, LegalAction{Type: Bet, Min: br.BigBlind, Max: maxTotal})
		}
	} else if !br.acted[seat.Position] {
		minTo := br.CurrentBet + br.minRaiseSize()
		if maxTotal >= minTo {
			actions = append(actions, LegalAction{Type: Raise, Min: minTo, Max: maxTotal})
		}
	}

	// A seat that already acted at this bet level may only shove when the
	// shove is no more than a call; anything bigger would be a raise.
	if seat.Stack > 0 && (!br.acted[seat.Position] || maxTotal <= br.CurrentBet) {
		actions = append(actions, LegalAction{Type: AllIn, Min: maxTotal, Max: maxTotal})
	}
	return actions
}

// Apply validates and executes the seat's action, mutating the seat and the
// round state. A returned error means nothing changed.
func (br *BettingRound) Apply(seat *Seat, act Action) error {
	if !seat.CanAct() {
		return &InvalidActionError{Position: seat.Position, Action: act.Type, Reason: "seat cannot act"}
	}

	toCall := br.CurrentBet - seat.Bet
	maxTotal := seat.Bet + seat.Stack

	switch act.Type {
	case Fold:
		seat.Status = SeatFolded

	case Check:
		if toCall != 0 {
			return &InvalidActionError{Position: seat.Position, Action: Check, Reason: "there is a bet to call"}
		}

	case Call:
		if toCall <= 0 {
			return &InvalidActionError{Position: seat.Position, Action: Call, Reason: "nothing to call"}
		}
		seat.commit(toCall)

	case Bet:
		if br.CurrentBet != 0 {
			return &InvalidActionError{Position: seat.Position, Action: Bet, Reason: "a bet is already open, raise instead"}
		}
		if act.Amount < br.BigBlind || act.Amount > maxTotal {
			return &InvalidAmountError{Action: Bet, Amount: act.Amount, Min: br.BigBlind, Max: maxTotal}
		}
		seat.commit(act.Amount - seat.Bet)
		br.reopen(seat.Position, act.Amount, act.Amount)

	case Raise:
		if br.CurrentBet == 0 {
			return &InvalidActionError{Position: seat.Position, Action: Raise, Reason: "nothing to raise, bet instead"}
		}
		if br.acted[seat.Position] {
			return &InvalidActionError{Position: seat.Position, Action: Raise, Reason: "betting is not reopened for this seat"}
		}
		minTo := br.CurrentBet + br.minRaiseSize()
		if act.Amount < minTo || act.Amount > maxTotal {
			return &InvalidAmountError{Action: Raise, Amount: act.Amount, Min: minTo, Max: maxTotal}
		}
		raiseSize := act.Amount - br.CurrentBet
		seat.commit(act.Amount - seat.Bet)
		br.reopen(seat.Position, act.Amount, raiseSize)

	case AllIn:
		if seat.Stack == 0 {
			return &InvalidActionError{Position: seat.Position, Action: AllIn, Reason: "no chips behind"}
		}
		if br.acted[seat.Position] && maxTotal > br.CurrentBet {
			return &InvalidActionError{Position: seat.Position, Action: AllIn, Reason: "betting is not reopened for this seat"}
		}
		total := maxTotal
		seat.commit(seat.Stack)
		if total > br.CurrentBet {
			raiseSize := total - br.CurrentBet
			if raiseSize >= br.minRaiseSize() {
				br.reopen(seat.Position, total, raiseSize)
			} else {
				// Short all-in: raises the price to call but does not give
				// seats that already acted another chance to raise.
				br.CurrentBet = total
			}
		}

	default:
		return &InvalidActionError{Position: seat.Position, Action: act.Type, Reason: "unknown action"}
	}

	br.acted[seat.Position] = true
	return nil
}

// Complete reports whether the round is over: every seat that can still act
// has acted at the current bet level and matched it.
func (br *BettingRound) Complete(seats []*Seat) bool {
	for _, s := range seats {
		if !s.CanAct() {
			continue
		}
		if s.Bet != br.CurrentBet || !br.acted[s.Position] {
			return false
		}
	}
	return true
}

// reopen records a full bet or raise: the bar moves and everyone else gets
// their turn back.
func (br *BettingRound) reopen(position, currentBet, raiseSize int) {
	br.CurrentBet = currentBet
	br.LastRaiseSize = raiseSize
	br.LastAggressor = position
	for i := range br.acted {
		br.acted[i] = i == position
	}
}

func (br *BettingRound) minRaiseSize() int {
	if br.LastRaiseSize > br.BigBlind {
		return br.LastRaiseSize
	}
	return br.BigBlind
}
