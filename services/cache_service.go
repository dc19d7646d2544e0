package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"svd_ambalaj_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

// Cache keys. Everything under catalogKeyPrefix is dropped on any catalog write.
const (
	catalogKeyPrefix     = "catalog:"
	productsListKey      = "catalog:products"
	productByIDKey       = "catalog:product:id:%s"
	productBySlugKey     = "catalog:product:slug:%s"
	productsByCategory   = "catalog:category:%s:products"
	categoriesListKey    = "catalog:categories"
	landingMediaKey      = "media:landing"
	rateLimitKeyTemplate = "ratelimit:%s:%s"
)

// CacheService provides Redis caching with retry logic. A nil *CacheService is a valid,
// disabled cache: reads miss and writes are no-ops.
type CacheService struct {
	logger *gecho.Logger
	client *redis.Client
	ttl    time.Duration
}

// NewCacheService connects to Redis when caching is enabled; it returns nil otherwise.
func NewCacheService(logger *gecho.Logger, cfg *structs.CacheConfig) (*CacheService, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("Redis cache disabled")
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opts.PoolTimeout = 2 * time.Second
	opts.MaxRetries = 2

	return NewCacheServiceWithClient(logger, redis.NewClient(opts), cfg.TTL), nil
}

func NewCacheServiceWithClient(logger *gecho.Logger, client *redis.Client, ttl time.Duration) *CacheService {
	return &CacheService{
		logger: logger,
		client: client,
		ttl:    ttl,
	}
}

func (cs *CacheService) Enabled() bool {
	return cs != nil && cs.client != nil
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if !cs.Enabled() {
		return nil
	}
	return cs.client.Close()
}

// withRetry executes a Redis operation with exponential backoff and jitter
func (cs *CacheService) withRetry(ctx context.Context, operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry on the last attempt
		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableError(err) {
			return err
		}

		backoff := min(100*(1<<attempt), 2000) // ms
		sleep := time.Duration(backoff/2+rand.IntN(backoff/2+1)) * time.Millisecond

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableError determines if an error is worth retrying
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}

	errStr := err.Error()
	for _, retryableErr := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	} {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}
	return false
}

// GetJSON decodes the cached value at key into dest. It reports false on a miss.
func (cs *CacheService) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !cs.Enabled() {
		return false, nil
	}

	var raw []byte
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			raw = nil
			return nil // Don't retry on key not found
		}
		raw = val
		return err
	}, 2)
	if err != nil || raw == nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// A stale shape from an older release; drop it and fall through to the database
		_ = cs.client.Del(ctx, key).Err()
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores value at key with the configured TTL
func (cs *CacheService) SetJSON(ctx context.Context, key string, value any) error {
	if !cs.Enabled() {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value for %s: %w", key, err)
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Set(ctx, key, payload, cs.ttl).Err()
	}, 2)
}

// Delete removes keys with automatic retry logic
func (cs *CacheService) Delete(ctx context.Context, keys ...string) error {
	if !cs.Enabled() || len(keys) == 0 {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Del(ctx, keys...).Err()
	}, 2)
}

// DeleteByPrefix removes every key starting with prefix using SCAN, never KEYS
func (cs *CacheService) DeleteByPrefix(ctx context.Context, prefix string) error {
	if !cs.Enabled() {
		return nil
	}

	iter := cs.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := cs.Delete(ctx, batch...); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys %s*: %w", prefix, err)
	}
	return cs.Delete(ctx, batch...)
}

// invalidateAsync drops cache entries in the background; failures only get logged
func (cs *CacheService) invalidateAsync(prefix string, keys ...string) {
	if !cs.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if prefix != "" {
			if err := cs.DeleteByPrefix(ctx, prefix); err != nil {
				cs.logger.Warn("Failed to invalidate cache prefix", gecho.Field("prefix", prefix), gecho.Field("error", err))
			}
		}
		if err := cs.Delete(ctx, keys...); err != nil {
			cs.logger.Warn("Failed to invalidate cache keys", gecho.Field("keys", keys), gecho.Field("error", err))
		}
	}()
}

// IncrementRateLimit atomically increments a rate limit counter, setting its expiry on
// the first hit of a window
func (cs *CacheService) IncrementRateLimit(ctx context.Context, ip, endpoint string, window time.Duration) (int, error) {
	if !cs.Enabled() {
		return 0, nil
	}

	key := fmt.Sprintf(rateLimitKeyTemplate, endpoint, ip)
	var count int64
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Incr(ctx, key).Result()
		if err != nil {
			return err
		}
		count = val
		if val == 1 {
			return cs.client.Expire(ctx, key, window).Err()
		}
		return nil
	}, 1)
	return int(count), err
}

func (cs *CacheService) Ping(ctx context.Context) error {
	if !cs.Enabled() {
		return nil
	}
	return cs.client.Ping(ctx).Err()
}

// GetConnectionStats reports Redis pool counters for the health endpoint
func (cs *CacheService) GetConnectionStats() map[string]any {
	if !cs.Enabled() {
		return map[string]any{"enabled": false}
	}
	stats := cs.client.PoolStats()
	return map[string]any{
		"enabled":     true,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

// Clear drops every cached catalog and media entry
func (cs *CacheService) Clear(ctx context.Context) error {
	if !cs.Enabled() {
		return nil
	}
	if err := cs.DeleteByPrefix(ctx, catalogKeyPrefix); err != nil {
		return err
	}
	return cs.Delete(ctx, landingMediaKey)
}
