package websocket

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/fortuna/hoopboard/internal/models"
)

// Hub maintains the set of active clients and broadcasts game updates to them
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan models.ScoreboardEntry
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	totalMessages int64
	metricsMu     sync.Mutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan models.ScoreboardEntry, 1000),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run(ctx context.Context) {
	log.Println("[hub] ✓ started")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.clientsMu.Unlock()
			log.Printf("[hub] client %s connected (total: %d)", client.ID, total)

		case client := <-h.unregister:
			h.removeClient(client)

		case entry := <-h.broadcast:
			h.broadcastEntry(entry)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a game update for all matching clients
func (h *Hub) Broadcast(entry models.ScoreboardEntry) {
	select {
	case h.broadcast <- entry:
	default:
		log.Println("[hub] ⚠️  broadcast buffer full, dropping update")
	}
}

// ClientCount returns the number of active clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// MessagesSent returns the number of updates delivered to at least one client
func (h *Hub) MessagesSent() int64 {
	h.metricsMu.Lock()
	defer h.metricsMu.Unlock()
	return h.totalMessages
}

func (h *Hub) removeClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.closeSend()
		log.Printf("[hub] client %s disconnected (total: %d)", c.ID, len(h.clients))
	}
}

func (h *Hub) broadcastEntry(entry models.ScoreboardEntry) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	message := ServerMessage{
		Type:      MessageTypeGameUpdate,
		Payload:   entry,
		Timestamp: time.Now(),
	}

	sent := 0
	for _, c := range clients {
		if !c.Filter().Matches(entry) {
			continue
		}
		if c.TrySend(message) {
			sent++
			continue
		}
		// Slow client: evict instead of blocking the hub
		log.Printf("[hub] ⚠️  client %s buffer full, disconnecting", c.ID)
		h.removeClient(c)
	}

	if sent > 0 {
		h.metricsMu.Lock()
		h.totalMessages++
		h.metricsMu.Unlock()
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	log.Printf("[hub] shutting down (%d active clients)", len(h.clients))
	for c := range h.clients {
		c.closeSend()
		delete(h.clients, c)
	}
}
