package main

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/cardroomhq/cardroom/internal/bot"
	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/randutil"
	"github.com/cardroomhq/cardroom/internal/statistics"
)

// SimulateCmd plays bot-vs-bot hands without a server, for smoke-testing
// rules and strategies.
type SimulateCmd struct {
	Hands      int    `kong:"default='100',help='Number of hands to play'"`
	Players    int    `kong:"default='4',help='Number of bot players'"`
	Stack      int    `kong:"default='1000',help='Starting stack per bot'"`
	SmallBlind int    `kong:"default='5',help='Small blind amount'"`
	BigBlind   int    `kong:"default='10',help='Big blind amount'"`
	Style      string `kong:"default='balanced',help='Bot style: balanced, conservative, aggressive, caller, random'"`
	Seed       *int64 `kong:"help='Deterministic RNG seed'"`
	LogLevel   string `kong:"default='info',help='Log level'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.LogLevel)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)
	logger.Info("Starting simulation", "hands", c.Hands, "players", c.Players, "seed", seed)

	if c.Players < 2 || c.Players > 10 {
		return fmt.Errorf("players must be between 2 and 10")
	}

	table := engine.TableConfig{
		Name:       "sim",
		MaxPlayers: c.Players,
		SmallBlind: c.SmallBlind,
		BigBlind:   c.BigBlind,
		MinBuyIn:   c.Stack,
		MaxBuyIn:   c.Stack,
	}

	stacks := make([]int, c.Players)
	deciders := make([]engine.Decider, c.Players)
	for i := range stacks {
		stacks[i] = c.Stack
		deciders[i] = bot.New(bot.ParseStyle(c.Style), randutil.Derive(seed, i))
	}

	ctx := context.Background()
	clock := quartz.NewReal()
	stats := statistics.NewTracker(c.BigBlind)
	button := -1
	played := 0

	for hand := 0; hand < c.Hands; hand++ {
		seats := make([]*engine.Seat, c.Players)
		alive := 0
		for i, stack := range stacks {
			status := engine.SeatActive
			if stack == 0 {
				status = engine.SeatSittingOut
			} else {
				alive++
			}
			seats[i] = &engine.Seat{
				PlayerID: fmt.Sprintf("sim-%d", i),
				Name:     fmt.Sprintf("bot-%d", i),
				Position: i,
				Stack:    stack,
				Status:   status,
				IsBot:    true,
				BuyIn:    c.Stack,
			}
		}
		if alive < 2 {
			logger.Info("Simulation ended early, one bot holds all chips", "hands_played", played)
			break
		}

		game := engine.NewGame(uuid.NewString(), table, seats,
			engine.WithButton(button),
			engine.WithHandCount(hand+1),
			engine.WithRNG(rng),
			engine.WithClock(clock),
		)
		if err := game.StartHand(); err != nil {
			return err
		}

		for game.CurrentPhase() != engine.PhaseFinished {
			actor := game.CurrentActor()
			if actor == -1 {
				break
			}
			req := engine.DecisionRequest{
				GameID:   game.ID,
				Position: actor,
				Hole:     game.Hole(actor),
				Legal:    game.LegalActions(actor),
				View:     game.View(),
			}
			act := engine.RequestDecision(ctx, clock, deciders[actor], req, time.Second)
			if err := game.ApplyAction(actor, act); err != nil {
				return fmt.Errorf("hand %d: %w", hand+1, err)
			}
		}
		if err := game.Settle(); err != nil {
			return err
		}

		recordHand(stats, game, stacks)
		for i, s := range game.Seats {
			stacks[i] = s.Stack
		}
		button = game.Button
		played++
	}

	if err := stats.Validate(); err != nil {
		return fmt.Errorf("result accounting: %w", err)
	}

	logger.Info("Simulation complete", "hands_played", played)
	for _, seat := range stats.Seats() {
		ss := stats.Seat(seat)
		low, high := ss.ConfidenceInterval95()
		logger.Info("Result",
			"bot", fmt.Sprintf("bot-%d", seat),
			"stack", stacks[seat],
			"net", stacks[seat]-c.Stack,
			"bb_per_hand", fmt.Sprintf("%.2f", ss.Mean()),
			"ci95", fmt.Sprintf("[%.2f, %.2f]", low, high),
			"showdown_wins", ss.ShowdownWins,
		)
	}
	logger.Info("Biggest pot", "chips", stats.MaxPotChips)
	return nil
}

// recordHand feeds one settled hand into the tracker. Sitting-out seats
// played no part and are skipped.
func recordHand(stats *statistics.Tracker, game *engine.Game, before []int) {
	result := game.Result()
	showdown := result != nil && !result.Uncontested
	pot := 0
	if result != nil {
		for _, award := range result.Awards {
			pot += award.Amount
		}
	}

	for i, s := range game.Seats {
		if s.Status == engine.SeatSittingOut {
			continue
		}
		stats.Record(statistics.HandOutcome{
			Seat:           i,
			NetChips:       s.Stack - before[i],
			WentToShowdown: showdown,
			PotChips:       pot,
		})
	}
}
