package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/fortuna/hoopboard/internal/ingest/espn"
	"github.com/fortuna/hoopboard/internal/models"
)

// Config holds all application configuration
type Config struct {
	RESTPort    string
	WSPort      string
	ESPNAPIBase string
	// RedisURL enables the response cache and stream publisher when set
	RedisURL string

	Leagues            []models.League
	LivePollInterval   time.Duration
	HTTPTimeout        time.Duration
	EnableLivePolling  bool
	SummaryConcurrency int
}

// LoadEnvFiles loads .env style files into the environment. Missing files
// are skipped; variables already set win over file values.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	leagues, err := parseLeagues(getEnv("LEAGUES", "nba,ncaa_mb"))
	if err != nil {
		return nil, err
	}

	pollInterval, err := parseDuration("LIVE_POLL_INTERVAL", "30s")
	if err != nil {
		return nil, err
	}

	httpTimeout, err := parseDuration("HTTP_TIMEOUT", espn.DefaultTimeout.String())
	if err != nil {
		return nil, err
	}

	concurrency, err := strconv.Atoi(getEnv("SUMMARY_CONCURRENCY", "4"))
	if err != nil || concurrency <= 0 {
		return nil, fmt.Errorf("SUMMARY_CONCURRENCY must be a positive integer")
	}

	enablePolling, err := strconv.ParseBool(getEnv("ENABLE_LIVE_POLLING", "true"))
	if err != nil {
		return nil, fmt.Errorf("ENABLE_LIVE_POLLING: %w", err)
	}

	return &Config{
		RESTPort:           getEnv("REST_PORT", "8080"),
		WSPort:             getEnv("WS_PORT", "8081"),
		ESPNAPIBase:        getEnv("ESPN_API_BASE", espn.BaseURL),
		RedisURL:           os.Getenv("REDIS_URL"),
		Leagues:            leagues,
		LivePollInterval:   pollInterval,
		HTTPTimeout:        httpTimeout,
		EnableLivePolling:  enablePolling,
		SummaryConcurrency: concurrency,
	}, nil
}

func parseLeagues(raw string) ([]models.League, error) {
	var leagues []models.League
	seen := make(map[models.League]bool)
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		league, ok := models.ParseLeague(tag)
		if !ok {
			return nil, fmt.Errorf("LEAGUES: unknown league %q", tag)
		}
		if !seen[league] {
			seen[league] = true
			leagues = append(leagues, league)
		}
	}
	if len(leagues) == 0 {
		return nil, fmt.Errorf("LEAGUES: no leagues configured")
	}
	return leagues, nil
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
