// Package cache wraps Redis for raw NHL document caching.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultDocumentTTL keeps fetched documents for a day; finished games never
// change, in-progress games refresh on the next run.
const defaultDocumentTTL = 24 * time.Hour

// RedisCache handles caching of raw upstream documents.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new Redis cache connection.
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
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    defaultDocumentTTL,
	}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client.
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify the connection.
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// SetTTL overrides the document TTL.
func (rc *RedisCache) SetTTL(ttl time.Duration) {
	if ttl > 0 {
		rc.ttl = ttl
	}
}

// GetDocument retrieves a cached document body. A miss returns (nil, nil).
func (rc *RedisCache) GetDocument(ctx context.Context, key string) ([]byte, error) {
	body, err := rc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// SetDocument stores a document body under the configured TTL.
func (rc *RedisCache) SetDocument(ctx context.Context, key string, body []byte) error {
	return rc.client.Set(ctx, key, body, rc.ttl).Err()
}

// Delete removes keys.
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}
