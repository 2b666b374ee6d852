// Package redis implements Redis caching for LinguaClip read models.
//
// Key components:
//   - Cache: General-purpose caching with TTL management
//   - ProgressCache: Learner progress snapshots for the progress endpoint
//   - LearnerCache: Read-through cache for learner profiles
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// PoolSize is the maximum number of socket connections.
	PoolSize int

	// MinIdleConns is the minimum number of idle connections.
	MinIdleConns int

	// MaxRetries is the maximum number of retries before giving up.
	MaxRetries int

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration

	// PoolTimeout is the timeout for getting a connection from the pool.
	PoolTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         6379,
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrCacheMiss is returned when the requested key is not found in cache.
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrCacheConnection is returned when Redis connection fails.
	ErrCacheConnection = errors.New("cache: connection failed")

	// ErrCacheSerialization is returned when serialization/deserialization fails.
	ErrCacheSerialization = errors.New("cache: serialization failed")

	// ErrCacheInvalidTTL is returned when an invalid TTL is provided.
	ErrCacheInvalidTTL = errors.New("cache: invalid TTL")

	// ErrCacheKeyEmpty is returned when an empty key is provided.
	ErrCacheKeyEmpty = errors.New("cache: key cannot be empty")

	// ErrCacheNilValue is returned when attempting to cache a nil value.
	ErrCacheNilValue = errors.New("cache: value cannot be nil")
)

// ══════════════════════════════════════════════════════════════════════════════
// KEY PREFIXES
// ══════════════════════════════════════════════════════════════════════════════

// Key prefixes for namespacing Redis keys.
const (
	// PrefixProgress is the prefix for progress snapshot keys.
	PrefixProgress = "progress:"

	// PrefixProfile is the prefix for learner profile keys.
	PrefixProfile = "profile:"

	// PrefixQuiz is the prefix for quiz read-model keys.
	PrefixQuiz = "quiz:"

	// PrefixRateLimit is the prefix for rate limiting keys.
	PrefixRateLimit = "ratelimit:"

	// PrefixLock is the prefix for distributed lock keys.
	PrefixLock = "lock:"
)

// ══════════════════════════════════════════════════════════════════════════════
// DEFAULT TTLs
// ══════════════════════════════════════════════════════════════════════════════

// Default TTL values for different types of cached data.
const (
	// TTLProgressSnapshot is the TTL for progress snapshots. Snapshots are
	// also invalidated on write, the TTL is the safety net.
	TTLProgressSnapshot = 5 * time.Minute

	// TTLProfileCache is the TTL for learner profile cache.
	TTLProfileCache = 10 * time.Minute

	// TTLRateLimitWindow is the default rate limit window.
	TTLRateLimitWindow = 1 * time.Minute

	// TTLDistributedLock is the default lock TTL.
	TTLDistributedLock = 30 * time.Second
)

// ══════════════════════════════════════════════════════════════════════════════
// CACHE CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Cache provides general-purpose caching functionality with Redis.
// It handles serialization, TTL management, and error handling.
type Cache struct {
	client *redis.Client
	config Config
}

// NewCache creates a new Cache instance with the given configuration.
func NewCache(cfg Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  cfg.PoolTimeout,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	return &Cache{
		client: client,
		config: cfg,
	}, nil
}

// Client returns the underlying Redis client for advanced operations.
// Use with caution - prefer using Cache methods when possible.
func (c *Cache) Client() *redis.Client {
	return c.client
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ping checks if Redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// BASIC OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// Set stores a value with the given key and TTL.
// The value is serialized to JSON before storage.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if key == "" {
		return ErrCacheKeyEmpty
	}
	if value == nil {
		return ErrCacheNilValue
	}
	if ttl < 0 {
		return ErrCacheInvalidTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Get retrieves and deserializes a value by key.
// Returns ErrCacheMiss if the key doesn't exist.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if key == "" {
		return ErrCacheKeyEmpty
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	return nil
}

// Delete removes keys from the cache.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	return c.client.Del(ctx, keys...).Err()
}

// Exists checks if a key exists in the cache.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrCacheKeyEmpty
	}

	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Expire sets a new TTL on an existing key.
func (c *Cache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if key == "" {
		return ErrCacheKeyEmpty
	}
	if ttl < 0 {
		return ErrCacheInvalidTTL
	}

	return c.client.Expire(ctx, key, ttl).Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// ATOMIC OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// SetNX sets a value only if the key doesn't exist (for distributed locks).
func (c *Cache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, ErrCacheKeyEmpty
	}
	if ttl < 0 {
		return false, ErrCacheInvalidTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	return c.client.SetNX(ctx, key, data, ttl).Result()
}

// Incr increments a counter and returns the new value.
func (c *Cache) Incr(ctx context.Context, key string) (int64, error) {
	if key == "" {
		return 0, ErrCacheKeyEmpty
	}

	return c.client.Incr(ctx, key).Result()
}

// ══════════════════════════════════════════════════════════════════════════════
// PUB/SUB OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// Publish publishes a message to a channel.
func (c *Cache) Publish(ctx context.Context, channel string, message interface{}) error {
	if channel == "" {
		return ErrCacheKeyEmpty
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	return c.client.Publish(ctx, channel, data).Err()
}

// Subscribe creates a subscription to channels.
// Remember to call Close() on the returned PubSub when done.
func (c *Cache) Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	return c.client.Subscribe(ctx, channels...)
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ══════════════════════════════════════════════════════════════════════════════

// ProgressKey generates a cache key for a progress snapshot.
func ProgressKey(userID string) string {
	return PrefixProgress + userID
}

// ProfileKey generates a cache key for a learner profile.
func ProfileKey(userID string) string {
	return PrefixProfile + userID
}

// RateLimitKey generates a cache key for rate limiting.
func RateLimitKey(identifier, action string) string {
	return PrefixRateLimit + identifier + ":" + action
}

// LockKey generates a cache key for distributed locks.
func LockKey(resource string) string {
	return PrefixLock + resource
}
