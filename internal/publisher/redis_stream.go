// Package publisher announces completed game assemblies on a Redis stream so
// downstream consumers (feature builders, notifiers) can react without
// polling the store.
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CompletedStream is the stream carrying game-completed announcements.
const CompletedStream = "pbp.games.completed"

// GameCompleted is the payload published per assembled game.
type GameCompleted struct {
	GameID   int64  `json:"gameId"`
	Events   int    `json:"events"`
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	JobID    string `json:"jobId,omitempty"`
}

// RedisStreamPublisher publishes announcements to Redis streams.
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a publisher from an existing client.
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// PublishGameCompleted announces one assembled game.
func (rsp *RedisStreamPublisher) PublishGameCompleted(ctx context.Context, payload GameCompleted) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: CompletedStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
