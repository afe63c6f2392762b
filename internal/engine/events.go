package engine

// Event is the wire envelope for everything the engine publishes.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Publisher delivers events to a logical channel. Implementations must not
// block: the engine calls Publish while holding the game lock, so delivery
// has to be queued, not performed inline.
type Publisher interface {
	Publish(channel string, event Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, Event) {}

// GameChannel is the logical channel carrying a game's events.
func GameChannel(gameID string) string {
	return "game_" + gameID
}

// SummaryNotification is the payload of the game_summary_notification
// envelope. Field names are part of the wire contract.
type SummaryNotification struct {
	Type        string       `json:"type"`
	GameID      string       `json:"game_id"`
	GameSummary *GameSummary `json:"game_summary"`
	Message     string       `json:"message"`
	GameStatus  string       `json:"game_status"`
}

const summaryMessage = "Game summary is now available - all players have cashed out"

// Emitter turns committed game transitions into published events. It is
// only called from inside a game's single-writer region, so per-game event
// order matches commit order.
type Emitter struct {
	pub Publisher
}

// NewEmitter wraps a publisher. A nil publisher discards everything.
func NewEmitter(p Publisher) *Emitter {
	if p == nil {
		p = nopPublisher{}
	}
	return &Emitter{pub: p}
}

// EmitUpdate publishes a game_update for one committed transition.
func (e *Emitter) EmitUpdate(v GameView) {
	e.pub.Publish(GameChannel(v.GameID), Event{Type: "game_update", Data: v})
}

// EmitSummary publishes the end-of-game summary notification. The caller
// guarantees this happens at most once per game.
func (e *Emitter) EmitSummary(s *GameSummary) {
	e.pub.Publish(GameChannel(s.GameID), Event{
		Type: "game_summary_notification",
		Data: SummaryNotification{
			Type:        "game_summary_available",
			GameID:      s.GameID,
			GameSummary: s,
			Message:     summaryMessage,
			GameStatus:  "FINISHED",
		},
	})
}
