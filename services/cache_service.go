package services

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"shop_admin_server/structs"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService provides Redis backed token revocation and request counters
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config, client *redis.Client) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: client,
	}
}

// NewRedisClient builds a pooled Redis client from the cache configuration
func NewRedisClient(cfg *structs.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,

		// Connection pool settings
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,

		// Timeouts
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		// Retry settings
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
	})
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	return cs.client.Close()
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(ctx context.Context, operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == maxRetries || !isRetryableCacheError(err) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoffWithJitter(attempt)):
		}
	}

	return fmt.Errorf("redis operation failed: %w", lastErr)
}

// backoffWithJitter returns 100ms * 2^attempt capped at 2s, jittered to 50-100%
func backoffWithJitter(attempt int) time.Duration {
	backoff := min(100*(1<<attempt), 2000)

	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Duration(backoff) * time.Millisecond
	}
	jitter := int(binary.BigEndian.Uint32(buf[:]) % uint32(backoff/2+1))

	return time.Duration(backoff/2+jitter) * time.Millisecond
}

// isRetryableCacheError determines if an error is worth retrying
func isRetryableCacheError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	errStr := err.Error()
	for _, retryable := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	} {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}
	return false
}

// Set sets a key with TTL
func (cs *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return cs.withRetry(ctx, func() error {
		return cs.client.Set(ctx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key, returning "" when it does not exist
func (cs *CacheService) Get(ctx context.Context, key string) (string, error) {
	var result string
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)
	if err != nil {
		return "", err
	}
	return result, nil
}

func blacklistKey(jti uuid.UUID) string {
	return "blacklist:" + jti.String()
}

// BlacklistToken revokes a token's jti until the token would have expired
func (cs *CacheService) BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error {
	ttl := cs.config.Auth.BlacklistCacheTTL
	if exp.After(time.Now()) {
		ttl = time.Until(exp)
	}
	return cs.Set(ctx, blacklistKey(jti), "true", ttl)
}

// IsTokenBlacklisted reports whether the jti was revoked
func (cs *CacheService) IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error) {
	val, err := cs.Get(ctx, blacklistKey(jti))
	if err != nil {
		return false, err
	}
	return val == "true", nil
}

// IncrementRateLimit atomically increments the counter for an IP/endpoint
// pair. The window starts with the first hit.
func (cs *CacheService) IncrementRateLimit(ctx context.Context, ip, endpoint string, window time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var result int64
	err := cs.withRetry(ctx, func() error {
		pipe := cs.client.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		result = incr.Val()
		return nil
	}, 3)

	return int(result), err
}

// Ping tests the Redis connection
func (cs *CacheService) Ping(ctx context.Context) error {
	return cs.withRetry(ctx, func() error {
		return cs.client.Ping(ctx).Err()
	}, 1)
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	stats := cs.client.PoolStats()

	return map[string]any{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}
