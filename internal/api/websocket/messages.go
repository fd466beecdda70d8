package websocket

import (
	"time"

	"github.com/fortuna/hoopboard/internal/models"
)

// Message types for WebSocket communication
const (
	MessageTypeGameUpdate  = "game_update"
	MessageTypeSubscribe   = "subscribe"
	MessageTypeUnsubscribe = "unsubscribe"
	MessageTypeHeartbeat   = "heartbeat"
	MessageTypeError       = "error"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SubscriptionFilter narrows the updates a client receives. Empty lists match everything.
type SubscriptionFilter struct {
	Leagues []string `json:"leagues,omitempty"`
	Games   []string `json:"games,omitempty"`
}

// Matches reports whether an update passes the filter
func (f SubscriptionFilter) Matches(entry models.ScoreboardEntry) bool {
	if entry.Game == nil {
		return false
	}
	if len(f.Leagues) > 0 && !contains(f.Leagues, string(entry.Game.League)) {
		return false
	}
	if len(f.Games) > 0 && !contains(f.Games, entry.Game.ID) {
		return false
	}
	return true
}

// ConnectionStats represents connection statistics
type ConnectionStats struct {
	ClientID         string    `json:"client_id"`
	ConnectedAt      time.Time `json:"connected_at"`
	MessagesSent     int64     `json:"messages_sent"`
	MessagesReceived int64     `json:"messages_received"`
}

// ErrorMessage represents an error message
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
