package server

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/cardroomhq/cardroom/internal/bot"
	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/randutil"
)

// player is a table occupant whose stack persists across hands. Each hand
// gets a fresh engine game; the table carries chips between them.
type player struct {
	id      string
	name    string
	stack   int
	buyIn   int
	isBot   bool
	decider engine.Decider
}

// Table runs a session of hands for one configured table. One goroutine
// owns the hand loop; joins, leaves, and human actions arrive from
// connection goroutines through the table lock.
type Table struct {
	cfg       engine.TableConfig
	logger    *log.Logger
	registry  *engine.Registry
	hub       *Hub
	clock     quartz.Clock
	rng       *rand.Rand
	turnClock time.Duration

	mu      sync.Mutex
	players []*player
	byID    map[string]*player
	button  int
	hands   int
	game    *engine.Game
	pending map[int]chan engine.Action
	wake    chan struct{}
}

// NewTable creates an idle table. Run starts the hand loop.
func NewTable(cfg engine.TableConfig, hub *Hub, registry *engine.Registry, logger *log.Logger, clock quartz.Clock, rng *rand.Rand, turnClock time.Duration) *Table {
	return &Table{
		cfg:       cfg,
		logger:    logger.WithPrefix("table." + cfg.Name),
		registry:  registry,
		hub:       hub,
		clock:     clock,
		rng:       rng,
		turnClock: turnClock,
		byID:      make(map[string]*player),
		button:    -1,
		pending:   make(map[int]chan engine.Action),
		wake:      make(chan struct{}, 1),
	}
}

// Name returns the table's configured name.
func (t *Table) Name() string { return t.cfg.Name }

// Info summarizes the table for listings.
func (t *Table) Info() TableInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TableInfo{
		Name:        t.cfg.Name,
		PlayerCount: len(t.players),
		MaxPlayers:  t.cfg.MaxPlayers,
		Stakes:      fmt.Sprintf("%d/%d", t.cfg.SmallBlind, t.cfg.BigBlind),
		HandsPlayed: t.hands,
	}
}

// Join seats a player with the given buy-in.
func (t *Table) Join(playerID, name string, buyIn int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.join(&player{id: playerID, name: name, stack: buyIn, buyIn: buyIn})
}

// AddBots seats count rule bots of the given style, returning their names.
func (t *Table) AddBots(style string, count, buyIn int) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if buyIn == 0 {
		buyIn = t.cfg.MinBuyIn
	}

	var names []string
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("bot-%s-%s", style, uuid.NewString()[:8])
		p := &player{
			id:      name,
			name:    name,
			stack:   buyIn,
			buyIn:   buyIn,
			isBot:   true,
			decider: bot.New(bot.ParseStyle(style), randutil.New(t.rng.Int63())),
		}
		if err := t.join(p); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}

// join seats a player. Caller holds the table lock.
func (t *Table) join(p *player) error {
	if _, ok := t.byID[p.id]; ok {
		return fmt.Errorf("player %s is already seated", p.id)
	}
	if len(t.players) >= t.cfg.MaxPlayers {
		return fmt.Errorf("table %s is full", t.cfg.Name)
	}
	if p.stack < t.cfg.MinBuyIn || p.stack > t.cfg.MaxBuyIn {
		return fmt.Errorf("buy-in %d outside allowed range %d-%d", p.stack, t.cfg.MinBuyIn, t.cfg.MaxBuyIn)
	}

	t.players = append(t.players, p)
	t.byID[p.id] = p
	t.logger.Info("Player seated", "player", p.name, "buy_in", p.stack, "seated", len(t.players))

	select {
	case t.wake <- struct{}{}:
	default:
	}
	return nil
}

// Leave removes a player between hands. During a hand the seat plays on
// with the default turn-clock action until the hand ends.
func (t *Table) Leave(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.byID[playerID]
	if !ok {
		return fmt.Errorf("player %s is not seated", playerID)
	}
	delete(t.byID, playerID)
	for i, q := range t.players {
		if q == p {
			t.players = append(t.players[:i], t.players[i+1:]...)
			break
		}
	}
	t.logger.Info("Player left", "player", p.name, "stack", p.stack)
	return nil
}

// SubmitAction routes a human player's action to their pending turn.
func (t *Table) SubmitAction(playerID string, act engine.Action) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.game == nil {
		return fmt.Errorf("no hand in progress")
	}
	pos := -1
	for i, s := range t.game.Seats {
		if s.PlayerID == playerID {
			pos = i
			break
		}
	}
	if pos == -1 {
		return fmt.Errorf("player %s is not in this hand", playerID)
	}

	ch, ok := t.pending[pos]
	if !ok {
		return fmt.Errorf("it is not your turn")
	}
	select {
	case ch <- act:
		return nil
	default:
		return fmt.Errorf("action already submitted")
	}
}

// Run drives the table until the context is cancelled: wait for players,
// play a hand, carry stacks forward, repeat.
func (t *Table) Run(ctx context.Context) error {
	for {
		if err := t.waitForPlayers(ctx); err != nil {
			return err
		}
		if err := t.runHand(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func (t *Table) waitForPlayers(ctx context.Context) error {
	for {
		t.mu.Lock()
		ready := t.readyCount() >= 2
		t.mu.Unlock()
		if ready {
			return nil
		}

		select {
		case <-t.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// readyCount counts seated players able to post a blind. Caller holds the
// table lock.
func (t *Table) readyCount() int {
	n := 0
	for _, p := range t.players {
		if p.stack > 0 {
			n++
		}
	}
	return n
}

// runHand plays one hand to completion.
func (t *Table) runHand(ctx context.Context) error {
	game, deciders, err := t.startHand()
	if err != nil {
		if errors.Is(err, engine.ErrInsufficientPlayers) {
			return nil
		}
		return err
	}

	t.logger.Info("Hand started", "game", game.ID, "hand", t.hands+1, "players", len(game.Seats))

	for game.CurrentPhase() != engine.PhaseFinished {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		actor := game.CurrentActor()
		if actor == -1 {
			break
		}

		legal := game.LegalActions(actor)
		if len(legal) == 0 {
			break
		}

		req := engine.DecisionRequest{
			GameID:   game.ID,
			Position: actor,
			Hole:     game.Hole(actor),
			Legal:    legal,
			View:     game.View(),
		}

		decider := deciders[actor]
		if decider == nil {
			decider = t.openTurn(game, actor, req)
		}

		act := engine.RequestDecision(ctx, t.clock, decider, req, t.turnClock)
		t.closeTurn(actor)

		if err := game.ApplyAction(actor, act); err != nil {
			var conservation *engine.ChipConservationError
			if errors.As(err, &conservation) {
				t.logger.Error("Chip conservation violated, halting table", "error", err)
				return err
			}
			t.logger.Warn("Action rejected, applying default", "seat", actor, "action", act.Type, "error", err)
			if err := game.ApplyAction(actor, engine.DefaultAction(legal)); err != nil {
				return err
			}
		}
	}

	return t.finishHand(game)
}

// startHand snapshots the roster into engine seats and opens a new game.
func (t *Table) startHand() (*engine.Game, []engine.Decider, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seats := make([]*engine.Seat, len(t.players))
	deciders := make([]engine.Decider, len(t.players))
	for i, p := range t.players {
		status := engine.SeatActive
		if p.stack == 0 {
			status = engine.SeatSittingOut
		}
		seats[i] = &engine.Seat{
			PlayerID: p.id,
			Name:     p.name,
			Position: i,
			Stack:    p.stack,
			Status:   status,
			IsBot:    p.isBot,
			BuyIn:    p.buyIn,
		}
		deciders[i] = p.decider
	}

	game := t.registry.Create(t.cfg, seats,
		engine.WithButton(t.button),
		engine.WithHandCount(t.hands+1),
		engine.WithPublisher(t.hub),
		engine.WithClock(t.clock),
		engine.WithRNG(t.rng),
	)
	t.hub.Bind(engine.GameChannel(game.ID), t.cfg.Name)

	if err := game.StartHand(); err != nil {
		t.registry.Remove(game.ID)
		return nil, nil, err
	}
	t.game = game

	for _, s := range seats {
		if !s.IsBot && s.Status == engine.SeatActive {
			t.sendHoleCards(game.ID, s)
		}
	}
	return game, deciders, nil
}

// finishHand copies final stacks back to the roster and cashes out busted
// players.
func (t *Table) finishHand(game *engine.Game) error {
	if err := game.Settle(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range game.Seats {
		if p, ok := t.byID[s.PlayerID]; ok {
			p.stack = s.Stack
		}
	}
	t.button = game.Button
	t.hands++
	t.game = nil
	t.registry.Remove(game.ID)
	t.hub.Unbind(engine.GameChannel(game.ID))

	var busted []*player
	for _, p := range t.players {
		if p.stack == 0 {
			busted = append(busted, p)
		}
	}
	for _, p := range busted {
		delete(t.byID, p.id)
		for i, q := range t.players {
			if q == p {
				t.players = append(t.players[:i], t.players[i+1:]...)
				break
			}
		}
		t.logger.Info("Player busted out", "player", p.name)
	}

	t.logger.Info("Hand finished", "game", game.ID, "hands", t.hands)
	return nil
}

// openTurn registers a pending-action channel for a human seat and tells
// the player it is their turn.
func (t *Table) openTurn(game *engine.Game, position int, req engine.DecisionRequest) engine.Decider {
	ch := make(chan engine.Action, 1)

	t.mu.Lock()
	t.pending[position] = ch
	t.mu.Unlock()

	legal := make([]LegalActionInfo, len(req.Legal))
	for i, la := range req.Legal {
		legal[i] = LegalActionInfo{Action: la.Type.String(), Min: la.Min, Max: la.Max}
	}
	msg, err := NewMessage(MessageTypeActionRequired, ActionRequiredData{
		Table:          t.cfg.Name,
		GameID:         game.ID,
		Position:       position,
		HoleCards:      req.Hole.Strings(),
		LegalActions:   legal,
		TimeoutSeconds: int(t.turnClock / time.Second),
	})
	if err == nil {
		t.hub.SendToPlayer(game.Seats[position].PlayerID, msg)
	}
	return pendingDecision{ch: ch}
}

// closeTurn drops the seat's pending channel and releases any decider
// goroutine still waiting on it.
func (t *Table) closeTurn(position int) {
	t.mu.Lock()
	ch, ok := t.pending[position]
	delete(t.pending, position)
	t.mu.Unlock()

	if ok {
		select {
		case ch <- engine.Action{Type: engine.Fold}:
		default:
		}
	}
}

func (t *Table) sendHoleCards(gameID string, s *engine.Seat) {
	msg, err := NewMessage(MessageTypeHandStart, HandStartData{
		Table:     t.cfg.Name,
		GameID:    gameID,
		Position:  s.Position,
		HoleCards: s.HoleCards.Strings(),
	})
	if err != nil {
		return
	}
	t.hub.SendToPlayer(s.PlayerID, msg)
}

// pendingDecision adapts a human player's pending-action channel to the
// engine's decision port.
type pendingDecision struct {
	ch chan engine.Action
}

func (p pendingDecision) Decide(ctx context.Context, _ engine.DecisionRequest) (engine.Action, error) {
	select {
	case act := <-p.ch:
		return act, nil
	case <-ctx.Done():
		return engine.Action{}, ctx.Err()
	}
}
