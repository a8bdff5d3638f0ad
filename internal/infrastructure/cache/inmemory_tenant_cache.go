package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/assettrack/backend/internal/domain/identity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTenantTTL       = 5 * time.Minute
	defaultCleanupInterval = 30 * time.Second
)

// InMemoryTenantCache decorates a TenantDirectory with an in-process cache.
// Suitable for single-instance deployments and tests.
type InMemoryTenantCache struct {
	inner   identity.TenantDirectory
	entries sync.Map // map[uuid.UUID]*tenantEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

type tenantEntry struct {
	tenant    *identity.Tenant
	expiresAt time.Time
}

func (e *tenantEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryTenantCacheOption is a functional option for configuring the cache
type InMemoryTenantCacheOption func(*InMemoryTenantCache)

// WithInMemoryTTL sets the entry lifetime
func WithInMemoryTTL(ttl time.Duration) InMemoryTenantCacheOption {
	return func(c *InMemoryTenantCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryTenantCacheOption {
	return func(c *InMemoryTenantCache) {
		c.logger = logger
	}
}

// NewInMemoryTenantCache creates a new in-memory tenant directory cache
func NewInMemoryTenantCache(inner identity.TenantDirectory, opts ...InMemoryTenantCacheOption) *InMemoryTenantCache {
	cache := &InMemoryTenantCache{
		inner:  inner,
		ttl:    defaultTenantTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// FindByID returns the cached tenant when fresh, otherwise consults the
// inner directory and caches the result
func (c *InMemoryTenantCache) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	if value, ok := c.entries.Load(id); ok {
		entry := value.(*tenantEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			return entry.tenant, nil
		}
		c.entries.Delete(id)
	}

	atomic.AddInt64(&c.misses, 1)
	tenant, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.entries.Store(id, &tenantEntry{
		tenant:    tenant,
		expiresAt: time.Now().Add(c.ttl),
	})
	return tenant, nil
}

// Invalidate removes one tenant from the cache
func (c *InMemoryTenantCache) Invalidate(id uuid.UUID) {
	c.entries.Delete(id)
}

// InvalidateAll removes all cached tenants
func (c *InMemoryTenantCache) InvalidateAll() {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
}

// GetStats returns cache hit/miss counters
func (c *InMemoryTenantCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Close stops the background cleanup goroutine
func (c *InMemoryTenantCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

func (c *InMemoryTenantCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			removed := 0
			c.entries.Range(func(key, value any) bool {
				if value.(*tenantEntry).isExpired() {
					c.entries.Delete(key)
					removed++
				}
				return true
			})
			if removed > 0 {
				c.logger.Debug("Cleaned up expired tenant cache entries",
					zap.Int("removed", removed))
			}
		}
	}
}

// Ensure InMemoryTenantCache implements TenantDirectory
var _ identity.TenantDirectory = (*InMemoryTenantCache)(nil)
