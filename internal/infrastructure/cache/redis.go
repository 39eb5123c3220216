package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainRepo "github.com/storepulse/storepulse-api/internal/domain/repository"
)

// redisNamespace prefixes every key written by this service so the report
// cache can share a Redis instance with other applications
const redisNamespace = "storepulse:"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisReportCache implements ReportCache backed by Redis, for deployments
// where multiple API instances share one cache
type RedisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache creates a Redis-backed report cache and verifies
// connectivity
func NewRedisReportCache(cfg RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportCache{client: client}, nil
}

// Get returns the cached payload for key, or found=false when absent.
// Redis handles expiration itself, so no explicit check is needed.
func (c *RedisReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, redisNamespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Set stores the payload with the given TTL, overwriting any existing entry
func (c *RedisReportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, redisNamespace+key, payload, ttl).Err()
}

// InvalidateAll scans for every key in the report namespace and deletes
// them, returning the number of entries removed
func (c *RedisReportCache) InvalidateAll(ctx context.Context) (int64, error) {
	var removed int64

	iter := c.client.Scan(ctx, 0, redisNamespace+KeyPrefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.client.Del(ctx, batch...).Result()
		if err != nil {
			return err
		}
		removed += n
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	if err := flush(); err != nil {
		return removed, err
	}

	return removed, nil
}

// Close closes the underlying Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// Ensure RedisReportCache implements ReportCache
var _ domainRepo.ReportCache = (*RedisReportCache)(nil)
