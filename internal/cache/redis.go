package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/fortuna/hoopboard/internal/ingest/espn"
	"github.com/fortuna/hoopboard/internal/models"
)

const (
	// ScoreboardTTL and SummaryTTL follow the upstream revalidation windows
	ScoreboardTTL = 60 * time.Second
	SummaryTTL    = 30 * time.Second

	keyPrefix = "hoopboard:espn"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RedisCache handles caching of raw upstream payloads
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// GetPayload loads a cached payload. A miss returns (nil, false, nil).
func (rc *RedisCache) GetPayload(ctx context.Context, key string) (map[string]interface{}, bool, error) {
	raw, err := rc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Drop the entry so the next read refetches instead of failing again
		if delErr := rc.Delete(ctx, key); delErr != nil {
			log.Printf("[cache] Warning: evicting %s failed: %v", key, delErr)
		}
		return nil, false, fmt.Errorf("decoding cached payload %s: %w", key, err)
	}
	return payload, true, nil
}

// SetPayload stores a payload with TTL
func (rc *RedisCache) SetPayload(ctx context.Context, key string, payload map[string]interface{}, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload %s: %w", key, err)
	}
	return rc.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}

// ScoreboardKey is the cache key for one league's scoreboard on a date.
// The zero date is ESPN's "today".
func ScoreboardKey(league models.League, date time.Time) string {
	day := "today"
	if !date.IsZero() {
		day = date.Format("20060102")
	}
	return fmt.Sprintf("%s:%s:scoreboard:%s", keyPrefix, league, day)
}

// SummaryKey is the cache key for one game summary
func SummaryKey(league models.League, gameID string) string {
	return fmt.Sprintf("%s:%s:summary:%s", keyPrefix, league, gameID)
}

// CachingFetcher serves raw payloads from Redis and falls through to the
// wrapped fetcher on a miss. Only raw payloads are cached; callers always
// normalize what they get back.
type CachingFetcher struct {
	next          espn.Fetcher
	cache         *RedisCache
	scoreboardTTL time.Duration
	summaryTTL    time.Duration
}

// NewCachingFetcher wraps next with the default TTLs
func NewCachingFetcher(next espn.Fetcher, cache *RedisCache) *CachingFetcher {
	return &CachingFetcher{
		next:          next,
		cache:         cache,
		scoreboardTTL: ScoreboardTTL,
		summaryTTL:    SummaryTTL,
	}
}

// FetchScoreboard implements espn.Fetcher
func (f *CachingFetcher) FetchScoreboard(ctx context.Context, league models.League, date time.Time) (map[string]interface{}, error) {
	return f.cached(ctx, ScoreboardKey(league, date), f.scoreboardTTL, func() (map[string]interface{}, error) {
		return f.next.FetchScoreboard(ctx, league, date)
	})
}

// FetchGameSummary implements espn.Fetcher
func (f *CachingFetcher) FetchGameSummary(ctx context.Context, league models.League, gameID string) (map[string]interface{}, error) {
	return f.cached(ctx, SummaryKey(league, gameID), f.summaryTTL, func() (map[string]interface{}, error) {
		return f.next.FetchGameSummary(ctx, league, gameID)
	})
}

// cached treats Redis failures as misses so the cache never takes the API down
func (f *CachingFetcher) cached(ctx context.Context, key string, ttl time.Duration, load func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	payload, hit, err := f.cache.GetPayload(ctx, key)
	if err != nil {
		log.Printf("[cache] Warning: read %s failed: %v", key, err)
	}
	if hit {
		return payload, nil
	}

	payload, err = load()
	if err != nil {
		return nil, err
	}

	if err := f.cache.SetPayload(ctx, key, payload, ttl); err != nil {
		log.Printf("[cache] Warning: write %s failed: %v", key, err)
	}
	return payload, nil
}
