package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/cardroomhq/cardroom/internal/engine"
)

// Hub fans engine events and private messages out to connections. It
// implements engine.Publisher; Publish only queues onto per-connection
// buffers, so it never blocks a game's single-writer region.
type Hub struct {
	logger     *log.Logger
	register   chan *Connection
	unregister chan *Connection

	mu           sync.RWMutex
	connections  map[*Connection]bool
	channelTable map[string]string
}

// NewHub creates a hub. Run must be started for connection lifecycle
// handling.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		logger:       logger.WithPrefix("hub"),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		connections:  make(map[*Connection]bool),
		channelTable: make(map[string]string),
	}
}

// Run handles connection registration until the context is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn] = true
			total := len(h.connections)
			h.mu.Unlock()
			h.logger.Info("Client connected", "total", total)

		case conn := <-h.unregister:
			h.mu.Lock()
			delete(h.connections, conn)
			total := len(h.connections)
			h.mu.Unlock()
			_ = conn.Close()
			h.logger.Info("Client disconnected", "total", total)

		case <-ctx.Done():
			h.closeAll()
			return ctx.Err()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.connections {
		_ = conn.Close()
	}
	h.connections = make(map[*Connection]bool)
}

// Bind routes a game channel to a table, so everyone seated at or watching
// the table receives the channel's events.
func (h *Hub) Bind(channel, table string) {
	h.mu.Lock()
	h.channelTable[channel] = table
	h.mu.Unlock()
}

// Unbind drops a finished game's channel routing.
func (h *Hub) Unbind(channel string) {
	h.mu.Lock()
	delete(h.channelTable, channel)
	h.mu.Unlock()
}

// Publish delivers an engine event to every connection watching the
// channel, in the order events were published.
func (h *Hub) Publish(channel string, event engine.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal event", "type", event.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	table := h.channelTable[channel]
	count := 0
	for conn := range h.connections {
		// Spectators follow a whole table with a "table:<name>" subscription.
		if conn.Subscribed(channel) || (table != "" && (conn.GetTable() == table || conn.Subscribed("table:"+table))) {
			conn.sendRaw(payload)
			count++
		}
	}
	h.logger.Debug("Published event", "channel", channel, "type", event.Type, "recipients", count)
}

// SendToPlayer queues a message for one player's connection.
func (h *Hub) SendToPlayer(playerID string, msg *Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to marshal message", "type", msg.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.connections {
		if conn.GetPlayer() == playerID {
			conn.sendRaw(payload)
			return
		}
	}
}

// ConnectedPlayers lists authenticated player ids.
func (h *Hub) ConnectedPlayers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var players []string
	for conn := range h.connections {
		if id := conn.GetPlayer(); id != "" {
			players = append(players, id)
		}
	}
	return players
}
