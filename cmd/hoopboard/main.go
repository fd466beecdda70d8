package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/hoopboard/internal/api/rest"
	"github.com/fortuna/hoopboard/internal/api/websocket"
	"github.com/fortuna/hoopboard/internal/cache"
	"github.com/fortuna/hoopboard/internal/config"
	"github.com/fortuna/hoopboard/internal/ingest/espn"
	"github.com/fortuna/hoopboard/internal/publisher"
	"github.com/fortuna/hoopboard/internal/scheduler"
	"github.com/fortuna/hoopboard/internal/service"
)

const (
	serviceName    = "hoopboard"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Basketball Scoreboard Service", serviceName, serviceVersion)

	if err := config.LoadEnvFiles(".env", ".env.local"); err != nil {
		log.Fatalf("Failed to load env files: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var fetcher espn.Fetcher = espn.New(cfg.ESPNAPIBase, cfg.HTTPTimeout)
	log.Printf("✓ ESPN client configured (%s)", cfg.ESPNAPIBase)

	// Redis is optional: without it responses are not cached and nothing is published
	var (
		pub         scheduler.Publisher
		cacheHealth rest.HealthChecker
	)
	if cfg.RedisURL != "" {
		redisCache := connectRedis(cfg.RedisURL)
		defer redisCache.Close()

		fetcher = cache.NewCachingFetcher(fetcher, redisCache)
		pub = publisher.NewRedisStreamPublisher(redisCache.Client())
		cacheHealth = redisCache
		log.Println("✓ Redis cache and stream publisher enabled")
	} else {
		log.Println("⚠️  REDIS_URL not set, running without cache or stream publishing")
	}

	games := service.NewGameService(fetcher, cfg.HTTPTimeout, cfg.SummaryConcurrency)

	wsServer := websocket.NewServer()

	schedulerConfig := scheduler.DefaultConfig()
	schedulerConfig.Leagues = cfg.Leagues
	schedulerConfig.LivePollInterval = cfg.LivePollInterval
	schedulerConfig.EnableLivePolling = cfg.EnableLivePolling
	sched := scheduler.NewOrchestrator(games, pub, wsServer, schedulerConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sched.Start(ctx)
	log.Println("✓ Live poller started")

	restServer := rest.NewServer(cfg.RESTPort, games, cacheHealth, sched)
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.RESTPort)
		if err := restServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("REST server error: %v", err)
		}
	}()

	go func() {
		log.Printf("Starting WebSocket server on port %s", cfg.WSPort)
		if err := wsServer.Start(cfg.WSPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ HoopBoard v%s started successfully", serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", cfg.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/games/live", cfg.WSPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down HoopBoard gracefully...")

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Println("HoopBoard stopped")
}

// connectRedis retries until Redis answers; containers often start out of order
func connectRedis(redisURL string) *cache.RedisCache {
	const (
		maxRetries = 30
		retryDelay = 2 * time.Second
	)

	log.Println("Connecting to Redis...")
	for i := 0; ; i++ {
		redisCache, err := cache.NewRedisCache(redisURL)
		if err == nil {
			log.Println("✓ Connected to Redis")
			return redisCache
		}
		if i >= maxRetries-1 {
			log.Fatalf("Failed to connect to Redis after %d attempts: %v", maxRetries, err)
		}
		log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
		time.Sleep(retryDelay)
	}
}
