package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024

	// Buffer size for outbound messages
	sendBufferSize = 256
)

// Client represents a WebSocket client connection
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan ServerMessage
	hub  *Hub

	// sendMu guards send against a close racing a reply from ReadPump
	sendMu sync.Mutex
	closed bool

	filter   SubscriptionFilter
	filterMu sync.RWMutex

	connectedAt      time.Time
	messagesSent     int64
	messagesReceived int64
	mu               sync.Mutex
}

// NewClient creates a new client with a random id
func NewClient(conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:          uuid.NewString(),
		conn:        conn,
		send:        make(chan ServerMessage, sendBufferSize),
		hub:         hub,
		connectedAt: time.Now(),
	}
}

// ReadPump reads subscription messages until the connection closes
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if ctx.Err() != nil {
			return
		}

		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[ws-client] %s unexpected close: %v", c.ID, err)
			}
			return
		}

		c.mu.Lock()
		c.messagesReceived++
		c.mu.Unlock()

		c.handleClientMessage(msg)
	}
}

// WritePump writes queued messages and keepalive pings to the connection
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				log.Printf("[ws-client] %s write error: %v", c.ID, err)
				return
			}

			c.mu.Lock()
			c.messagesSent++
			c.mu.Unlock()

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend queues a message without blocking.
// Returns false if the client's buffer is full or the client was closed.
func (c *Client) TrySend(msg ServerMessage) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// closeSend closes the outbound queue once; WritePump then sends a close frame
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// SetFilter updates the client's subscription filter
func (c *Client) SetFilter(filter SubscriptionFilter) {
	c.filterMu.Lock()
	defer c.filterMu.Unlock()
	c.filter = filter
}

// Filter returns the client's current filter
func (c *Client) Filter() SubscriptionFilter {
	c.filterMu.RLock()
	defer c.filterMu.RUnlock()
	return c.filter
}

// Stats returns connection statistics
func (c *Client) Stats() ConnectionStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ConnectionStats{
		ClientID:         c.ID,
		ConnectedAt:      c.connectedAt,
		MessagesSent:     c.messagesSent,
		MessagesReceived: c.messagesReceived,
	}
}

func (c *Client) handleClientMessage(msg ClientMessage) {
	switch msg.Type {
	case MessageTypeSubscribe:
		c.handleSubscribe(msg.Payload)
	case MessageTypeUnsubscribe:
		c.SetFilter(SubscriptionFilter{})
		log.Printf("[ws-client] %s unsubscribed", c.ID)
	case MessageTypeHeartbeat:
		c.TrySend(ServerMessage{Type: MessageTypeHeartbeat, Payload: c.Stats(), Timestamp: time.Now()})
	default:
		c.sendError("unknown_message_type", fmt.Sprintf("unknown message type: %s", msg.Type))
	}
}

func (c *Client) handleSubscribe(payload map[string]interface{}) {
	filterJSON, err := json.Marshal(payload)
	if err != nil {
		c.sendError("invalid_filter", "failed to parse filter")
		return
	}

	var filter SubscriptionFilter
	if err := json.Unmarshal(filterJSON, &filter); err != nil {
		c.sendError("invalid_filter", "failed to parse filter")
		return
	}

	c.SetFilter(filter)
	log.Printf("[ws-client] %s subscribed: leagues=%v games=%v", c.ID, filter.Leagues, filter.Games)
}

func (c *Client) sendError(code, message string) {
	c.TrySend(ServerMessage{
		Type:      MessageTypeError,
		Payload:   ErrorMessage{Code: code, Message: message},
		Timestamp: time.Now(),
	})
}
