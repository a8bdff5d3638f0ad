package cache

import (
	"fmt"

	"github.com/assettrack/backend/internal/domain/identity"
	"github.com/assettrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// TenantCacheFactory creates tenant directory caches based on configuration
type TenantCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// TenantCacheFactoryOption is a functional option for configuring the factory
type TenantCacheFactoryOption func(*TenantCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) TenantCacheFactoryOption {
	return func(f *TenantCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) TenantCacheFactoryOption {
	return func(f *TenantCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewTenantCacheFactory creates a new factory
func NewTenantCacheFactory(cfg config.RedisConfig, opts ...TenantCacheFactoryOption) *TenantCacheFactory {
	f := &TenantCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed tenant directory cache
func (f *TenantCacheFactory) CreateRedisCache(inner identity.TenantDirectory) (identity.TenantDirectory, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisTenantCache(inner, redisCfg, f.redisConfig.TTL, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis tenant cache: %w", err)
	}
	return cache, nil
}

// CreateInMemoryCache creates an in-memory tenant directory cache.
// In-memory caches do not share state across process instances.
func (f *TenantCacheFactory) CreateInMemoryCache(inner identity.TenantDirectory) identity.TenantDirectory {
	return NewInMemoryTenantCache(inner,
		WithInMemoryTTL(f.redisConfig.TTL),
		WithInMemoryLogger(f.logger),
	)
}

// CreateCache wraps the given directory with a cache. It tries Redis
// first and falls back to in-memory when Redis is unavailable and
// fallback is allowed.
func (f *TenantCacheFactory) CreateCache(inner identity.TenantDirectory) (identity.TenantDirectory, error) {
	cache, err := f.CreateRedisCache(inner)
	if err == nil {
		f.logger.Info("using Redis tenant directory cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for tenant cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory tenant directory cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(inner), nil
}
