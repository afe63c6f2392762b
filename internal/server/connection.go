package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/cardroomhq/cardroom/internal/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 8192
)

// Connection wraps one WebSocket client. Outbound traffic goes through a
// buffered channel; a client that cannot keep up is dropped rather than
// allowed to stall broadcasts.
type Connection struct {
	conn    *websocket.Conn
	send    chan []byte
	logger  *log.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	service *Service

	mu            sync.RWMutex
	playerID      string
	tableName     string
	subscriptions map[string]bool

	closeOnce sync.Once
}

// NewConnection wraps an upgraded WebSocket connection.
func NewConnection(conn *websocket.Conn, logger *log.Logger, service *Service) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:          conn,
		send:          make(chan []byte, 256),
		logger:        logger.WithPrefix("conn"),
		ctx:           ctx,
		cancel:        cancel,
		service:       service,
		subscriptions: make(map[string]bool),
	}
}

// Start begins the read and write pumps.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down. Safe to call more than once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// Done is closed when the connection shuts down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// sendRaw queues pre-marshaled bytes. A full buffer closes the connection.
func (c *Connection) sendRaw(payload []byte) {
	select {
	case c.send <- payload:
	case <-c.ctx.Done():
	default:
		c.logger.Warn("Connection send buffer full, closing connection", "player", c.GetPlayer())
		_ = c.Close()
	}
}

// SendMessage marshals and queues a message.
func (c *Connection) SendMessage(msg *Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.sendRaw(payload)
	return nil
}

// SetPlayer associates this connection with a player.
func (c *Connection) SetPlayer(playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = playerID
}

// GetPlayer returns the associated player id.
func (c *Connection) GetPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// SetTable associates this connection with a table.
func (c *Connection) SetTable(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tableName = name
}

// GetTable returns the associated table name.
func (c *Connection) GetTable() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tableName
}

// Subscribe adds explicit channel subscriptions.
func (c *Connection) Subscribe(channels ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range channels {
		c.subscriptions[ch] = true
	}
}

// Subscribed reports whether the connection asked for a channel.
func (c *Connection) Subscribed(channel string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subscriptions[channel]
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.GetPlayer())

	switch msg.Type {
	case MessageTypeAuth:
		var data AuthData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse auth data")
			return
		}
		c.handleAuth(data)

	case MessageTypeJoinTable:
		var data JoinTableData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join table data")
			return
		}
		c.handleJoinTable(data)

	case MessageTypeLeaveTable:
		var data LeaveTableData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse leave table data")
			return
		}
		c.handleLeaveTable(data)

	case MessageTypeListTables:
		c.handleListTables()

	case MessageTypeAction:
		var data ActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse action data")
			return
		}
		c.handleAction(data)

	case MessageTypeAddBot:
		var data AddBotData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse add bot data")
			return
		}
		c.handleAddBot(data)

	case MessageTypeSubscribe:
		var data SubscribeData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse subscribe data")
			return
		}
		c.Subscribe(data.Channels...)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+string(msg.Type))
	}
}

func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	_ = c.SendMessage(errorMsg)
}

func (c *Connection) handleAuth(data AuthData) {
	if data.PlayerName == "" {
		c.sendError("invalid_auth", "Player name required")
		return
	}

	c.SetPlayer(data.PlayerName)
	c.logger.Info("Player authenticated", "player", data.PlayerName)

	response, _ := NewMessage(MessageTypeAuthResponse, AuthResponseData{
		Success:  true,
		PlayerID: data.PlayerName,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleJoinTable(data JoinTableData) {
	playerID := c.GetPlayer()
	if playerID == "" {
		c.sendError("not_authenticated", "Must authenticate first")
		return
	}

	table, err := c.service.JoinTable(data.Table, playerID, data.BuyIn)
	if err != nil {
		c.sendError("join_failed", err.Error())
		return
	}
	c.SetTable(data.Table)

	info := table.Info()
	response, _ := NewMessage(MessageTypeTableJoined, TableJoinedData{
		Table:    data.Table,
		Position: info.PlayerCount - 1,
		Stack:    data.BuyIn,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleLeaveTable(data LeaveTableData) {
	playerID := c.GetPlayer()
	if playerID == "" {
		c.sendError("not_authenticated", "Must authenticate first")
		return
	}

	if err := c.service.LeaveTable(data.Table, playerID); err != nil {
		c.sendError("leave_failed", err.Error())
		return
	}
	c.SetTable("")

	response, _ := NewMessage(MessageTypeTableLeft, TableLeftData{Table: data.Table})
	_ = c.SendMessage(response)
}

func (c *Connection) handleListTables() {
	response, _ := NewMessage(MessageTypeTableList, TableListData{Tables: c.service.ListTables()})
	_ = c.SendMessage(response)
}

func (c *Connection) handleAction(data ActionData) {
	playerID := c.GetPlayer()
	if playerID == "" {
		c.sendError("not_authenticated", "Must authenticate first")
		return
	}

	actionType, err := engine.ParseActionType(data.Action)
	if err != nil {
		c.sendError("invalid_action", err.Error())
		return
	}

	act := engine.Action{Type: actionType, Amount: data.Amount, At: time.Now()}
	if err := c.service.SubmitAction(data.Table, playerID, act); err != nil {
		c.sendError("action_failed", err.Error())
		return
	}
	// No response: the engine publishes the committed result.
}

func (c *Connection) handleAddBot(data AddBotData) {
	playerID := c.GetPlayer()
	if playerID == "" {
		c.sendError("not_authenticated", "Must authenticate first")
		return
	}

	table, err := c.service.Table(data.Table)
	if err != nil {
		c.sendError("add_bot_failed", err.Error())
		return
	}

	count := data.Count
	if count == 0 {
		count = 1
	}
	names, err := table.AddBots(data.Style, count, 0)
	if err != nil {
		c.sendError("add_bot_failed", err.Error())
		return
	}

	response, _ := NewMessage(MessageTypeBotAdded, BotAddedData{Table: data.Table, BotNames: names})
	_ = c.SendMessage(response)
}
