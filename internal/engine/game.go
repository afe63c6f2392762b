package engine

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/cardroomhq/cardroom/internal/poker"
)

// TableConfig is the table-level ruleset. Immutable once a game starts.
type TableConfig struct {
	Name       string
	MaxPlayers int
	SmallBlind int
	BigBlind   int
	MinBuyIn   int
	MaxBuyIn   int
}

// Game drives a single hand from deal to settlement. All mutation happens
// under the game's own mutex; callers never touch seats, deck, or pot
// directly while a hand is live.
type Game struct {
	mu sync.Mutex

	ID        string
	Table     TableConfig
	Phase     Phase
	Seats     []*Seat
	Button    int
	Actor     int // -1 when no seat is due to act
	Board     []poker.Card
	Deck      *poker.Deck
	Pot       *PotManager
	Betting   *BettingRound
	HandCount int // hands completed in the session this game belongs to

	clock   quartz.Clock
	rng     *rand.Rand
	emitter *Emitter

	startingTotal int
	result        *HandResult
	summarized    bool
}

// PotAward records how one pot layer was paid out.
type PotAward struct {
	Amount   int
	Eligible []int
	Winners  []int
	Share    int // chips each winner received, before the odd chip
}

// HandResult is the settlement outcome: showdown ranks for seats that
// reached showdown, and the payout of each pot layer.
type HandResult struct {
	Ranks       map[int]poker.HandRank
	Awards      []PotAward
	Uncontested bool
}

// GameOption configures a Game at construction.
type GameOption func(*Game)

// WithRNG sets the shuffle source. Defaults to a time-seeded source.
func WithRNG(rng *rand.Rand) GameOption {
	return func(g *Game) { g.rng = rng }
}

// WithDeck supplies a prepared deck, bypassing the shuffle. For tests.
func WithDeck(d *poker.Deck) GameOption {
	return func(g *Game) { g.Deck = d }
}

// WithClock sets the time source. Defaults to the real clock.
func WithClock(c quartz.Clock) GameOption {
	return func(g *Game) { g.clock = c }
}

// WithPublisher routes the game's events to the given publisher.
func WithPublisher(p Publisher) GameOption {
	return func(g *Game) { g.emitter = NewEmitter(p) }
}

// WithButton sets the button of the previous hand; StartHand rotates past
// it. Defaults to -1 so the first hand gives seat 0 the button.
func WithButton(button int) GameOption {
	return func(g *Game) { g.Button = button }
}

// WithHandCount records how many session hands this one completes.
func WithHandCount(n int) GameOption {
	return func(g *Game) { g.HandCount = n }
}

// NewGame creates a game in the waiting phase. Seats must be indexed by
// their Position field.
func NewGame(id string, table TableConfig, seats []*Seat, opts ...GameOption) *Game {
	g := &Game{
		ID:     id,
		Table:  table,
		Phase:  PhaseWaiting,
		Seats:  seats,
		Button: -1,
		Actor:  -1,
		Pot:    NewPotManager(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.clock == nil {
		g.clock = quartz.NewReal()
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.emitter == nil {
		g.emitter = NewEmitter(nil)
	}
	return g
}

// StartHand rotates the button, shuffles, deals hole cards, posts blinds,
// and opens preflop betting. It fails with ErrInsufficientPlayers when
// fewer than two seats can play.
func (g *Game) StartHand() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Phase != PhaseWaiting {
		return &InvalidPhaseTransitionError{From: g.Phase, To: PhaseDealing}
	}

	eligible := 0
	total := 0
	for _, s := range g.Seats {
		total += s.Stack
		if s.Status == SeatSittingOut || s.Stack == 0 {
			s.Status = SeatSittingOut
			continue
		}
		s.Status = SeatActive
		s.HoleCards = 0
		s.Bet = 0
		eligible++
	}
	if eligible < 2 {
		return ErrInsufficientPlayers
	}
	g.startingTotal = total

	g.Button = g.nextEligible(g.Button + 1)
	if g.Deck == nil {
		g.Deck = poker.NewDeck(g.rng)
	}

	g.setPhase(PhaseDealing)
	for _, s := range g.Seats {
		if s.Status == SeatActive {
			s.HoleCards = poker.NewHand(g.Deck.Deal(2)...)
		}
	}
	g.emitUpdate()

	g.Betting = NewBettingRound(len(g.Seats), g.Table.BigBlind)
	sb, bb := g.blindPositions()
	g.Betting.PostBlind(g.Seats[sb], g.Table.SmallBlind)
	g.Betting.PostBlind(g.Seats[bb], g.Table.BigBlind)
	if g.Betting.CurrentBet < g.Table.BigBlind {
		// A short-stacked big blind does not lower the price to play.
		g.Betting.CurrentBet = g.Table.BigBlind
	}

	g.setPhase(PhasePreflopBetting)
	g.Actor = g.nextToAct(bb + 1)
	g.emitUpdate()

	if g.Actor == -1 {
		g.advance()
	}
	return nil
}

// ApplyAction validates and applies an action from the seat at position.
// Rejected actions leave the game untouched and emit nothing.
func (g *Game) ApplyAction(position int, act Action) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.Phase.IsBetting() {
		return &InvalidActionError{Position: position, Action: act.Type, Reason: "no betting round in progress"}
	}
	if position != g.Actor {
		return &InvalidActionError{Position: position, Action: act.Type, Reason: "not this seat's turn"}
	}

	if err := g.Betting.Apply(g.Seats[position], act); err != nil {
		return err
	}

	if err := g.checkConservation(); err != nil {
		return err
	}

	if g.inHandCount() == 1 {
		// Everyone else folded. The pot is won uncontested; the board
		// stays as dealt and no hands are evaluated.
		g.collectBets()
		g.emitUpdate()
		g.setPhase(PhaseSettlement)
		g.emitUpdate()
		g.settle()
		return nil
	}

	if g.Betting.Complete(g.Seats) {
		g.emitUpdate()
		g.advance()
		return nil
	}

	g.Actor = g.nextToAct(g.Actor + 1)
	g.emitUpdate()
	return nil
}

// LegalActions returns the legal actions for the seat at position, or nil
// when it is not that seat's turn.
func (g *Game) LegalActions(position int) []LegalAction {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.Phase.IsBetting() || position != g.Actor {
		return nil
	}
	return g.Betting.LegalActions(g.Seats[position])
}

// Settle finalizes a game sitting in the settlement phase. Calling it on an
// already finished game is a no-op, so retries are safe.
func (g *Game) Settle() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Phase == PhaseFinished {
		return nil
	}
	if g.Phase != PhaseSettlement {
		return &InvalidPhaseTransitionError{From: g.Phase, To: PhaseFinished}
	}
	g.settle()
	return g.checkConservation()
}

// Result returns the settlement outcome, or nil before the game finishes.
func (g *Game) Result() *HandResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result
}

// CurrentPhase returns the phase at this instant.
func (g *Game) CurrentPhase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Phase
}

// CurrentActor returns the seat due to act, or -1.
func (g *Game) CurrentActor() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Actor
}

// Hole returns the hole cards of the seat at position. For the private
// decision path only; views never carry hole cards.
func (g *Game) Hole(position int) poker.Hand {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Seats[position].HoleCards
}

// View snapshots the public game state.
func (g *Game) View() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view()
}

// advance closes the current betting round and walks the phase machine
// forward, dealing streets until someone can act or the hand settles.
func (g *Game) advance() {
	g.collectBets()

	switch g.Phase {
	case PhasePreflopBetting:
		g.dealCommunity(PhaseFlop, 3)
	case PhaseFlopBetting:
		g.dealCommunity(PhaseTurn, 1)
	case PhaseTurnBetting:
		g.dealCommunity(PhaseRiver, 1)
	case PhaseRiverBetting:
		g.setPhase(PhaseShowdown)
		g.emitUpdate()
		g.setPhase(PhaseSettlement)
		g.emitUpdate()
		g.settle()
		return
	default:
		return
	}

	g.Betting = NewBettingRound(len(g.Seats), g.Table.BigBlind)
	g.setPhase(g.Phase.nextBetting())
	g.Actor = g.nextToAct(g.Button + 1)
	g.emitUpdate()

	if g.Actor == -1 || g.Betting.Complete(g.Seats) {
		// Nobody left with chips behind: run the board out.
		g.advance()
	}
}

// dealCommunity burns one card and reveals n to the board.
func (g *Game) dealCommunity(phase Phase, n int) {
	g.Deck.Burn()
	g.Board = append(g.Board, g.Deck.Deal(n)...)
	g.setPhase(phase)
	g.Actor = -1
	g.emitUpdate()
}

// settle pays out every pot layer and finishes the game. Runs exactly once
// per game; the emitter guards the summary against re-publication.
func (g *Game) settle() {
	layers := g.Pot.Layers(g.Seats)
	result := &HandResult{Ranks: make(map[int]poker.HandRank)}

	contested := g.inHandCount() > 1
	result.Uncontested = !contested
	if contested {
		board := poker.NewHand(g.Board...)
		for _, s := range g.Seats {
			if s.InHand() {
				result.Ranks[s.Position] = poker.Evaluate(s.HoleCards | board)
			}
		}
	}

	for _, layer := range layers {
		award := PotAward{Amount: layer.Amount, Eligible: layer.Eligible}
		award.Winners = g.layerWinners(layer, result.Ranks)
		award.Share = layer.Amount / len(award.Winners)
		remainder := layer.Amount % len(award.Winners)

		for _, pos := range award.Winners {
			g.Seats[pos].Stack += award.Share
		}
		if remainder > 0 {
			g.Seats[g.firstClockwise(award.Winners)].Stack += remainder
		}
		result.Awards = append(result.Awards, award)
	}

	g.result = result
	g.setPhase(PhaseFinished)
	g.Actor = -1
	g.emitUpdate()

	if !g.summarized {
		g.summarized = true
		g.emitter.EmitSummary(g.buildSummary())
	}
}

// layerWinners ranks a layer's eligible seats. With one eligible seat there
// is nothing to compare.
func (g *Game) layerWinners(layer PotLayer, ranks map[int]poker.HandRank) []int {
	if len(layer.Eligible) == 1 {
		return layer.Eligible
	}

	var best poker.HandRank
	var winners []int
	for _, pos := range layer.Eligible {
		r := ranks[pos]
		switch {
		case r > best:
			best = r
			winners = []int{pos}
		case r == best:
			winners = append(winners, pos)
		}
	}
	return winners
}

// firstClockwise picks the winner closest clockwise from the button, which
// is where the odd chip goes.
func (g *Game) firstClockwise(winners []int) int {
	n := len(g.Seats)
	best := winners[0]
	bestDist := n + 1
	for _, pos := range winners {
		dist := (pos - g.Button - 1 + n) % n
		if dist < bestDist {
			bestDist = dist
			best = pos
		}
	}
	return best
}

// collectBets folds each seat's round bet into the pot.
func (g *Game) collectBets() {
	for _, s := range g.Seats {
		g.Pot.Collect(s.Position, s.Bet)
		s.Bet = 0
	}
}

func (g *Game) setPhase(p Phase) {
	g.Phase = p
}

// blindPositions returns the small and big blind seats. Heads-up, the
// button posts the small blind.
func (g *Game) blindPositions() (sb, bb int) {
	if g.eligibleCount() == 2 {
		sb = g.Button
		bb = g.nextEligible(g.Button + 1)
		return sb, bb
	}
	sb = g.nextEligible(g.Button + 1)
	bb = g.nextEligible(sb + 1)
	return sb, bb
}

func (g *Game) nextEligible(from int) int {
	n := len(g.Seats)
	for i := 0; i < n; i++ {
		pos := ((from + i) % n + n) % n
		if g.Seats[pos].Status != SeatSittingOut && (g.Seats[pos].Stack > 0 || g.Seats[pos].InHand()) {
			return pos
		}
	}
	return -1
}

func (g *Game) nextToAct(from int) int {
	n := len(g.Seats)
	for i := 0; i < n; i++ {
		pos := ((from + i) % n + n) % n
		if g.Seats[pos].CanAct() {
			return pos
		}
	}
	return -1
}

func (g *Game) inHandCount() int {
	count := 0
	for _, s := range g.Seats {
		if s.InHand() {
			count++
		}
	}
	return count
}

func (g *Game) eligibleCount() int {
	count := 0
	for _, s := range g.Seats {
		if s.Status != SeatSittingOut {
			count++
		}
	}
	return count
}

// checkConservation verifies that no chips appeared or vanished. A failure
// is a defect in the engine, never a recoverable condition.
func (g *Game) checkConservation() error {
	total := g.Pot.Total()
	for _, s := range g.Seats {
		total += s.Stack + s.Bet
	}
	if total != g.startingTotal {
		return &ChipConservationError{GameID: g.ID, Expected: g.startingTotal, Got: total}
	}
	return nil
}

// emitUpdate publishes the committed state as a game_update event.
func (g *Game) emitUpdate() {
	g.emitter.EmitUpdate(g.view())
}

// sortedPositions is a small helper for stable views.
func sortedPositions(m map[int]poker.HandRank) []int {
	out := make([]int, 0, len(m))
	for pos := range m {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}
