package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/printworks/backend/internal/domain/shared/valueobject"
)

// defaultRateKey is the Redis key the rate table is stored under
const defaultRateKey = "currency:rates"

// RedisRateCache implements RateCache on Redis. Suitable for distributed
// deployments where multiple instances share one rate table.
type RedisRateCache struct {
	client *redis.Client
	key    string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisRateCache creates a Redis-backed rate cache and verifies the
// connection
func NewRedisRateCache(cfg RedisConfig) (*RedisRateCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRateCache{client: client, key: defaultRateKey}, nil
}

// NewRedisRateCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or sharing a client across components.
func NewRedisRateCacheWithClient(client *redis.Client, key string) *RedisRateCache {
	if key == "" {
		key = defaultRateKey
	}
	return &RedisRateCache{client: client, key: key}
}

// Get returns the cached rate table if one is present
func (c *RedisRateCache) Get(ctx context.Context) (RateTable, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read rate table: %w", err)
	}

	var stored map[string]string
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, false, fmt.Errorf("failed to decode rate table: %w", err)
	}

	rates := make(RateTable, len(stored))
	for code, amount := range stored {
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, false, fmt.Errorf("invalid cached rate for %s: %w", code, err)
		}
		rates[valueobject.Currency(code)] = d
	}
	return rates, true, nil
}

// Set stores a rate table with the given TTL
func (c *RedisRateCache) Set(ctx context.Context, rates RateTable, ttl time.Duration) error {
	stored := make(map[string]string, len(rates))
	for code, rate := range rates {
		stored[string(code)] = rate.String()
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode rate table: %w", err)
	}
	if err := c.client.Set(ctx, c.key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store rate table: %w", err)
	}
	return nil
}

// Clear drops the cached table
func (c *RedisRateCache) Clear(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to clear rate table: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisRateCache) Close() error {
	return c.client.Close()
}

var _ RateCache = (*RedisRateCache)(nil)
