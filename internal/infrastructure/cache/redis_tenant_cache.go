package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/assettrack/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisTenantCache decorates a TenantDirectory with a Redis cache so
// multiple instances share lookups against the external directory
type RedisTenantCache struct {
	inner     identity.TenantDirectory
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisTenantCache creates a new Redis-backed tenant directory cache
func NewRedisTenantCache(inner identity.TenantDirectory, cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisTenantCache, error) {
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

	if ttl <= 0 {
		ttl = defaultTenantTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RedisTenantCache{
		inner:     inner,
		client:    client,
		keyPrefix: "tenant:directory:",
		ttl:       ttl,
		logger:    logger,
	}, nil
}

// NewRedisTenantCacheWithClient creates a cache with an existing Redis
// client. Useful for tests and for sharing a client across components.
func NewRedisTenantCacheWithClient(inner identity.TenantDirectory, client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisTenantCache {
	if ttl <= 0 {
		ttl = defaultTenantTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisTenantCache{
		inner:     inner,
		client:    client,
		keyPrefix: "tenant:directory:",
		ttl:       ttl,
		logger:    logger,
	}
}

// FindByID returns the cached tenant when present, otherwise consults the
// inner directory and caches the result. Cache failures degrade to a
// direct lookup rather than failing the request.
func (c *RedisTenantCache) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	key := c.keyPrefix + id.String()

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var tenant identity.Tenant
		if unmarshalErr := json.Unmarshal(data, &tenant); unmarshalErr == nil {
			return &tenant, nil
		}
		// Corrupt entry, drop it and fall through
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("tenant cache read failed, falling through to directory",
			zap.String("tenant_id", id.String()),
			zap.Error(err))
	}

	tenant, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, marshalErr := json.Marshal(tenant); marshalErr == nil {
		if setErr := c.client.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			c.logger.Warn("tenant cache write failed",
				zap.String("tenant_id", id.String()),
				zap.Error(setErr))
		}
	}
	return tenant, nil
}

// Invalidate removes one tenant from the cache
func (c *RedisTenantCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, c.keyPrefix+id.String()).Err()
}

// Close closes the Redis client
func (c *RedisTenantCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisTenantCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisTenantCache implements TenantDirectory
var _ identity.TenantDirectory = (*RedisTenantCache)(nil)
