// Package cache provides caching for the charge catalog, whose default
// entries are read on every wizard session open.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/infrastructure/config"
)

// defaultChargeTTL bounds how stale the cached default charges may get
// even when invalidation is missed.
const defaultChargeTTL = 5 * time.Minute

// chargeDefaultsKey is the Redis key holding the default charge items
const chargeDefaultsKey = "innkeep:charge_catalog:defaults"

// ChargeCatalogCache caches the default charge catalog entries. A miss
// returns (nil, false, nil); errors are reserved for backend failures.
type ChargeCatalogCache interface {
	GetDefaults(ctx context.Context) ([]booking.ChargeItem, bool, error)
	SetDefaults(ctx context.Context, items []booking.ChargeItem) error
	Invalidate(ctx context.Context) error
}

// RedisChargeCatalogCache implements ChargeCatalogCache using Redis
type RedisChargeCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisChargeCatalogCache creates a Redis-backed charge catalog cache
// and verifies the connection before returning.
func NewRedisChargeCatalogCache(cfg config.RedisConfig, logger *zap.Logger) (*RedisChargeCatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisChargeCatalogCache{
		client: client,
		ttl:    defaultChargeTTL,
		logger: logger,
	}, nil
}

// GetDefaults returns the cached default charge items
func (c *RedisChargeCatalogCache) GetDefaults(ctx context.Context) ([]booking.ChargeItem, bool, error) {
	data, err := c.client.Get(ctx, chargeDefaultsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read charge defaults from cache: %w", err)
	}

	var items []booking.ChargeItem
	if err := json.Unmarshal(data, &items); err != nil {
		// A corrupt entry is treated as a miss so the caller falls
		// through to the repository.
		c.logger.Warn("corrupt charge catalog cache entry", zap.Error(err))
		return nil, false, nil
	}
	return items, true, nil
}

// SetDefaults stores the default charge items with a TTL
func (c *RedisChargeCatalogCache) SetDefaults(ctx context.Context, items []booking.ChargeItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode charge defaults: %w", err)
	}
	if err := c.client.Set(ctx, chargeDefaultsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write charge defaults to cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached defaults
func (c *RedisChargeCatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, chargeDefaultsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate charge defaults: %w", err)
	}
	return nil
}

// Close releases the Redis connection
func (c *RedisChargeCatalogCache) Close() error {
	return c.client.Close()
}

// InMemoryChargeCatalogCache implements ChargeCatalogCache in process
// memory. It backs single-instance deployments and tests.
type InMemoryChargeCatalogCache struct {
	mu        sync.RWMutex
	items     []booking.ChargeItem
	populated bool
	expiresAt time.Time
	ttl       time.Duration
}

// NewInMemoryChargeCatalogCache creates a new in-memory cache
func NewInMemoryChargeCatalogCache() *InMemoryChargeCatalogCache {
	return &InMemoryChargeCatalogCache{ttl: defaultChargeTTL}
}

// GetDefaults returns the cached default charge items
func (c *InMemoryChargeCatalogCache) GetDefaults(ctx context.Context) ([]booking.ChargeItem, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.populated || time.Now().After(c.expiresAt) {
		return nil, false, nil
	}
	items := make([]booking.ChargeItem, len(c.items))
	copy(items, c.items)
	return items, true, nil
}

// SetDefaults stores the default charge items
func (c *InMemoryChargeCatalogCache) SetDefaults(ctx context.Context, items []booking.ChargeItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]booking.ChargeItem, len(items))
	copy(c.items, items)
	c.populated = true
	c.expiresAt = time.Now().Add(c.ttl)
	return nil
}

// Invalidate drops the cached defaults
func (c *InMemoryChargeCatalogCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.populated = false
	return nil
}
