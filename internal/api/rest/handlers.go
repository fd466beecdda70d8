package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/fortuna/hoopboard/internal/ingest/espn"
	"github.com/fortuna/hoopboard/internal/models"
	"github.com/fortuna/hoopboard/internal/service"
)

// GameProvider is the read side of the game service used by the handlers
type GameProvider interface {
	Scoreboard(ctx context.Context, league models.League, date time.Time) ([]models.ScoreboardEntry, error)
	GameDetail(ctx context.Context, league models.League, gameID string, date time.Time) (*models.GameDetail, error)
	Plays(ctx context.Context, league models.League, gameID string) (models.PlayFeed, error)
}

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StatusReporter describes a background component's configuration
type StatusReporter interface {
	GetStatus() map[string]interface{}
}

const healthCheckTimeout = 2 * time.Second

// Handler contains dependencies for HTTP handlers
type Handler struct {
	games  GameProvider
	cache  HealthChecker
	poller StatusReporter
}

// NewHandler creates a new handler. cache and poller may be nil.
func NewHandler(games GameProvider, cache HealthChecker, poller StatusReporter) *Handler {
	return &Handler{games: games, cache: cache, poller: poller}
}

// HealthCheck handles health check requests. An unreachable cache reports
// degraded with 503; the API still serves uncached data in that state.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]interface{}{
		"status":  "healthy",
		"service": "hoopboard",
		"version": "1.0.0",
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := h.cache.HealthCheck(ctx); err != nil {
			log.Printf("[rest] ⚠️  cache health check failed: %v", err)
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["cache"] = "unreachable"
		} else {
			body["cache"] = "ok"
		}
	}

	if h.poller != nil {
		body["poller"] = h.poller.GetStatus()
	}

	respondJSON(w, status, body)
}

// GetScoreboard returns a league's games for a date with first scorers
func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueFromPath(w, r)
	if !ok {
		return
	}

	date, err := parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYYMMDD)", err)
		return
	}

	entries, err := h.games.Scoreboard(r.Context(), league, date)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"league": league,
		"games":  entries,
		"count":  len(entries),
	})
}

// GetGame returns the full detail view of one game
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueFromPath(w, r)
	if !ok {
		return
	}

	date, err := parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYYMMDD)", err)
		return
	}

	h.writeGameDetail(w, r, league, mux.Vars(r)["gameID"], date)
}

// GetGameByQuery serves /game?league=&gameId=
func (h *Handler) GetGameByQuery(w http.ResponseWriter, r *http.Request) {
	leagueParam := r.URL.Query().Get("league")
	gameID := r.URL.Query().Get("gameId")
	if leagueParam == "" || gameID == "" {
		respondError(w, http.StatusBadRequest, "Missing league or gameId", nil)
		return
	}

	league, ok := models.ParseLeague(leagueParam)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown league", fmt.Errorf("league %q", leagueParam))
		return
	}

	h.writeGameDetail(w, r, league, gameID, time.Time{})
}

func (h *Handler) writeGameDetail(w http.ResponseWriter, r *http.Request, league models.League, gameID string, date time.Time) {
	detail, err := h.games.GameDetail(r.Context(), league, gameID, date)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Game state changes between polls
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, http.StatusOK, detail)
}

// GetPlays returns a game's plays grouped by period.
// Query params: order=newest|oldest (default newest), period=Q1|OT1|...
func (h *Handler) GetPlays(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueFromPath(w, r)
	if !ok {
		return
	}

	order := strings.ToLower(r.URL.Query().Get("order"))
	if order == "" {
		order = "newest"
	}
	if order != "newest" && order != "oldest" {
		respondError(w, http.StatusBadRequest, "Invalid order (use newest or oldest)", nil)
		return
	}

	feed, err := h.games.Plays(r.Context(), league, mux.Vars(r)["gameID"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	groups := espn.GroupByPeriod(feed.Plays, order == "newest")
	if period := strings.ToUpper(r.URL.Query().Get("period")); period != "" {
		filtered := []models.PeriodGroup{}
		for _, g := range groups {
			if g.Label == period {
				filtered = append(filtered, g)
			}
		}
		groups = filtered
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"order":        order,
		"periods":      groups,
		"snapshots":    feed.Snapshots,
		"first_scorer": feed.FirstScorer,
		"count":        len(feed.Plays),
	})
}

func leagueFromPath(w http.ResponseWriter, r *http.Request) (models.League, bool) {
	raw := mux.Vars(r)["league"]
	league, ok := models.ParseLeague(raw)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown league", fmt.Errorf("league %q", raw))
		return "", false
	}
	return league, true
}

// parseDateParam accepts YYYYMMDD and YYYY-MM-DD. Empty means today.
func parseDateParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("20060102", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// respondServiceError maps service errors to status codes. Upstream failures
// are logged but never echoed to the caller.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownLeague):
		respondError(w, http.StatusBadRequest, "Unknown league", err)
	case errors.Is(err, service.ErrUpstreamUnavailable):
		log.Printf("[rest] upstream failure: %v", err)
		respondError(w, http.StatusServiceUnavailable, "data unavailable", nil)
	default:
		log.Printf("[rest] request failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch game data", nil)
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
