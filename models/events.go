package models

import "encoding/json"

// WebSocket event names. Server-to-client pushes use the same
// envelope as client-to-server relays.
const (
	EventMessageReceived = "message:received"
	EventUserTyping      = "user:typing"
	EventMessageRead     = "message:read"
	EventOnlineUsers     = "online:users"
)

// Event is the wire envelope for every WebSocket frame.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func NewEvent(name string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{Event: name, Data: raw}, nil
}

// MessageReceivedPayload accompanies EventMessageReceived.
type MessageReceivedPayload struct {
	Message Message `json:"message"`
}

// TypingPayload travels client -> server -> peer. To is consumed by
// the relay; From is filled in server-side from the session.
type TypingPayload struct {
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	IsTyping bool   `json:"isTyping"`
}

// ReadPayload mirrors TypingPayload for read receipts.
type ReadPayload struct {
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	MessageID string `json:"messageId"`
}

// OnlineUsersPayload lists the ids of currently connected users.
type OnlineUsersPayload struct {
	UserIDs []string `json:"userIds"`
}
