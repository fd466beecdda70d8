package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewRouter wires the API routes and middleware
func NewRouter(handler *Handler) *mux.Router {
	router := mux.NewRouter()
	useMiddleware(router)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET", "OPTIONS")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Single-game lookup by query string, kept for existing clients
	api.HandleFunc("/game", handler.GetGameByQuery).Methods("GET", "OPTIONS")

	// Per-league routes
	api.HandleFunc("/{league}/scoreboard", handler.GetScoreboard).Methods("GET", "OPTIONS")
	api.HandleFunc("/{league}/games/{gameID}", handler.GetGame).Methods("GET", "OPTIONS")
	api.HandleFunc("/{league}/games/{gameID}/plays", handler.GetPlays).Methods("GET", "OPTIONS")

	return router
}

// useMiddleware applies recovery, request logging and read-only CORS.
// Routes also accept OPTIONS: mux only runs middleware on matched routes,
// and the CORS handler answers preflights itself.
func useMiddleware(router *mux.Router) {
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// NewServer creates a new REST API server. cache and poller feed /health and may be nil.
func NewServer(port string, games GameProvider, cache HealthChecker, poller StatusReporter) *Server {
	handler := NewHandler(games, cache, poller)

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%s", port),
			Handler:           NewRouter(handler),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
