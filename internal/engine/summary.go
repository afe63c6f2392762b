package engine

import (
	"sort"
	"time"
)

// PlayerSummary is one player's line in the end-of-game summary. Win/loss
// is measured against the buy-in, not the stack at hand start.
type PlayerSummary struct {
	PlayerName    string `json:"player_name"`
	PlayerID      string `json:"player_id"`
	StartingStack int    `json:"starting_stack"`
	FinalStack    int    `json:"final_stack"`
	WinLoss       int    `json:"win_loss"`
	Status        string `json:"status"`
}

// GameSummary is the end-of-game aggregate published once per game.
type GameSummary struct {
	GameID      string          `json:"game_id"`
	TableName   string          `json:"table_name"`
	CompletedAt string          `json:"completed_at"`
	TotalHands  int             `json:"total_hands"`
	Players     []PlayerSummary `json:"players"`
}

// buildSummary computes the summary after settlement has resolved every
// stack. Caller holds the game lock.
func (g *Game) buildSummary() *GameSummary {
	hands := g.HandCount
	if hands == 0 {
		hands = 1
	}

	s := &GameSummary{
		GameID:      g.ID,
		TableName:   g.Table.Name,
		CompletedAt: g.clock.Now().UTC().Format(time.RFC3339),
		TotalHands:  hands,
		Players:     make([]PlayerSummary, 0, len(g.Seats)),
	}

	for _, seat := range g.Seats {
		s.Players = append(s.Players, PlayerSummary{
			PlayerName:    seat.Name,
			PlayerID:      seat.PlayerID,
			StartingStack: seat.BuyIn,
			FinalStack:    seat.Stack,
			WinLoss:       seat.Stack - seat.BuyIn,
			Status:        "CASHED_OUT",
		})
	}

	sort.SliceStable(s.Players, func(i, j int) bool {
		return s.Players[i].WinLoss > s.Players[j].WinLoss
	})
	return s
}
