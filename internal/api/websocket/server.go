package websocket

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fortuna/hoopboard/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins; the feed is public read-only data
	},
}

// Server represents the WebSocket server
type Server struct {
	port   string
	server *http.Server
	hub    *Hub
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new WebSocket server
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		hub:    NewHub(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Handler starts the hub and returns the HTTP handler serving the WebSocket routes
func (s *Server) Handler() http.Handler {
	go s.hub.Run(s.ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/games/live", s.handleLiveGames)
	mux.HandleFunc("/ws/health", s.handleHealth)
	return mux
}

// Start starts the WebSocket server
func (s *Server) Start(port string) error {
	s.port = port
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("[ws] listening on :%s", port)
	return s.server.ListenAndServe()
}

// handleLiveGames handles WebSocket connections for live game updates
func (s *Server) handleLiveGames(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] failed to upgrade connection: %v", err)
		return
	}

	client := NewClient(conn, s.hub)
	s.hub.Register(client)

	go client.WritePump(s.ctx)
	go client.ReadPump(s.ctx)
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// BroadcastGame sends a game update to all subscribed clients
func (s *Server) BroadcastGame(entry models.ScoreboardEntry) {
	s.hub.Broadcast(entry)
}

// ClientCount returns the number of connected clients
func (s *Server) ClientCount() int {
	return s.hub.ClientCount()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
