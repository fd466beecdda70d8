package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/hoopboard/internal/models"
)

// streamMaxLen caps each stream so an unattended consumer cannot grow Redis without bound
const streamMaxLen = 10000

// LiveStream is the stream carrying in-progress game updates for a league
func LiveStream(league models.League) string {
	return fmt.Sprintf("games.live.%s", league)
}

// FinalStream is the stream carrying completed games for a league
func FinalStream(league models.League) string {
	return fmt.Sprintf("games.final.%s", league)
}

// RedisStreamPublisher publishes game updates to Redis streams
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// PublishGame routes a game to the live or final stream by status.
// Scheduled games are not published.
func (rsp *RedisStreamPublisher) PublishGame(ctx context.Context, game *models.Game) error {
	switch {
	case game.IsLive():
		return rsp.PublishLiveGameUpdate(ctx, game.League, game)
	case game.IsFinal():
		return rsp.PublishFinalGame(ctx, game.League, game)
	}
	return nil
}

// PublishLiveGameUpdate publishes a live game update to the stream
func (rsp *RedisStreamPublisher) PublishLiveGameUpdate(ctx context.Context, league models.League, gameData interface{}) error {
	return rsp.publish(ctx, LiveStream(league), gameData)
}

// PublishFinalGame publishes a completed game to the stream
func (rsp *RedisStreamPublisher) PublishFinalGame(ctx context.Context, league models.League, gameData interface{}) error {
	return rsp.publish(ctx, FinalStream(league), gameData)
}

func (rsp *RedisStreamPublisher) publish(ctx context.Context, streamName string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
