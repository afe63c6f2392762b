package engine

// SeatView is a seat as seen by spectators. Hole cards are never included;
// they travel only on the private decision path.
type SeatView struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Position   int    `json:"position"`
	Stack      int    `json:"stack"`
	Bet        int    `json:"bet"`
	Status     string `json:"status"`
	IsBot      bool   `json:"is_bot"`
}

// AwardView is one settled pot layer.
type AwardView struct {
	Amount  int   `json:"amount"`
	Winners []int `json:"winners"`
}

// ShowdownView is one seat's revealed hand strength at showdown.
type ShowdownView struct {
	Position int    `json:"position"`
	Category string `json:"category"`
}

// GameView is the game_update payload: everything phase-relevant about the
// game at one committed transition.
type GameView struct {
	GameID         string         `json:"game_id"`
	TableName      string         `json:"table_name"`
	Phase          string         `json:"phase"`
	Pot            int            `json:"pot"`
	CurrentBet     int            `json:"current_bet"`
	CurrentActor   int            `json:"current_actor"`
	Button         int            `json:"button"`
	CommunityCards []string       `json:"community_cards"`
	Seats          []SeatView     `json:"seats"`
	Awards         []AwardView    `json:"awards,omitempty"`
	Showdown       []ShowdownView `json:"showdown,omitempty"`
}

// view snapshots the game for broadcast. Caller holds the game lock.
func (g *Game) view() GameView {
	v := GameView{
		GameID:       g.ID,
		TableName:    g.Table.Name,
		Phase:        g.Phase.String(),
		Pot:          g.Pot.Total(),
		CurrentActor: g.Actor,
		Button:       g.Button,
	}
	if g.Betting != nil {
		v.CurrentBet = g.Betting.CurrentBet
	}

	v.CommunityCards = make([]string, len(g.Board))
	for i, c := range g.Board {
		v.CommunityCards[i] = c.String()
	}

	v.Seats = make([]SeatView, len(g.Seats))
	for i, s := range g.Seats {
		v.Pot += s.Bet
		v.Seats[i] = SeatView{
			PlayerID:   s.PlayerID,
			PlayerName: s.Name,
			Position:   s.Position,
			Stack:      s.Stack,
			Bet:        s.Bet,
			Status:     s.Status.String(),
			IsBot:      s.IsBot,
		}
	}

	if g.result != nil {
		for _, a := range g.result.Awards {
			v.Awards = append(v.Awards, AwardView{Amount: a.Amount, Winners: a.Winners})
		}
		for _, pos := range sortedPositions(g.result.Ranks) {
			v.Showdown = append(v.Showdown, ShowdownView{
				Position: pos,
				Category: g.result.Ranks[pos].Category().String(),
			})
		}
	}
	return v
}
