package server

import (
	"encoding/json"
	"time"
)

// MessageType identifies a client/server message.
type MessageType string

const (
	// Client to server.
	MessageTypeAuth       MessageType = "auth"
	MessageTypeJoinTable  MessageType = "join_table"
	MessageTypeLeaveTable MessageType = "leave_table"
	MessageTypeListTables MessageType = "list_tables"
	MessageTypeAction     MessageType = "action"
	MessageTypeAddBot     MessageType = "add_bot"
	MessageTypeSubscribe  MessageType = "subscribe"

	// Server to client. Game events keep their engine envelope and are not
	// listed here.
	MessageTypeAuthResponse   MessageType = "auth_response"
	MessageTypeError          MessageType = "error"
	MessageTypeTableList      MessageType = "table_list"
	MessageTypeTableJoined    MessageType = "table_joined"
	MessageTypeTableLeft      MessageType = "table_left"
	MessageTypeBotAdded       MessageType = "bot_added"
	MessageTypeHandStart      MessageType = "hand_start"
	MessageTypeActionRequired MessageType = "action_required"
)

// Message is the base WebSocket message structure.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client to server payloads.

type AuthData struct {
	PlayerName string `json:"player_name"`
}

type JoinTableData struct {
	Table string `json:"table"`
	BuyIn int    `json:"buy_in"`
}

type LeaveTableData struct {
	Table string `json:"table"`
}

type ActionData struct {
	Table  string `json:"table"`
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

type AddBotData struct {
	Table string `json:"table"`
	Style string `json:"style,omitempty"`
	Count int    `json:"count,omitempty"`
}

type SubscribeData struct {
	Channels []string `json:"channels"`
}

// Server to client payloads.

type AuthResponseData struct {
	Success  bool   `json:"success"`
	PlayerID string `json:"player_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TableInfo struct {
	Name        string `json:"name"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Stakes      string `json:"stakes"`
	HandsPlayed int    `json:"hands_played"`
}

type TableListData struct {
	Tables []TableInfo `json:"tables"`
}

type TableJoinedData struct {
	Table    string `json:"table"`
	Position int    `json:"position"`
	Stack    int    `json:"stack"`
}

type TableLeftData struct {
	Table string `json:"table"`
}

type BotAddedData struct {
	Table    string   `json:"table"`
	BotNames []string `json:"bot_names"`
}

// HandStartData privately tells a player their hole cards for a new hand.
type HandStartData struct {
	Table     string   `json:"table"`
	GameID    string   `json:"game_id"`
	Position  int      `json:"position"`
	HoleCards []string `json:"hole_cards"`
}

type LegalActionInfo struct {
	Action string `json:"action"`
	Min    int    `json:"min,omitempty"`
	Max    int    `json:"max,omitempty"`
}

// ActionRequiredData privately tells a player it is their turn.
type ActionRequiredData struct {
	Table          string            `json:"table"`
	GameID         string            `json:"game_id"`
	Position       int               `json:"position"`
	HoleCards      []string          `json:"hole_cards"`
	LegalActions   []LegalActionInfo `json:"legal_actions"`
	TimeoutSeconds int               `json:"timeout_seconds"`
}
