package cache

import (
	"context"
	"testing"
	"time"

	"github.com/assettrack/backend/internal/domain/identity"
	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTenantDirectory is a mock implementation of identity.TenantDirectory
type MockTenantDirectory struct {
	mock.Mock
}

func (m *MockTenantDirectory) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func TestInMemoryTenantCache_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("second lookup hits the cache", func(t *testing.T) {
		inner := new(MockTenantDirectory)
		cache := NewInMemoryTenantCache(inner)
		defer cache.Close()

		id := uuid.New()
		inner.On("FindByID", ctx, id).Return(&identity.Tenant{Name: "Acme"}, nil).Once()

		first, err := cache.FindByID(ctx, id)
		require.NoError(t, err)
		second, err := cache.FindByID(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		inner.AssertNumberOfCalls(t, "FindByID", 1)

		hits, misses := cache.GetStats()
		assert.Equal(t, int64(1), hits)
		assert.Equal(t, int64(1), misses)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		inner := new(MockTenantDirectory)
		cache := NewInMemoryTenantCache(inner)
		defer cache.Close()

		id := uuid.New()
		inner.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound).Twice()

		_, err := cache.FindByID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = cache.FindByID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		inner.AssertExpectations(t)
	})

	t.Run("expired entries fall through to the directory", func(t *testing.T) {
		inner := new(MockTenantDirectory)
		cache := NewInMemoryTenantCache(inner, WithInMemoryTTL(time.Millisecond))
		defer cache.Close()

		id := uuid.New()
		inner.On("FindByID", ctx, id).Return(&identity.Tenant{Name: "Acme"}, nil).Twice()

		_, err := cache.FindByID(ctx, id)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		_, err = cache.FindByID(ctx, id)
		require.NoError(t, err)
		inner.AssertExpectations(t)
	})

	t.Run("invalidate forces a refresh", func(t *testing.T) {
		inner := new(MockTenantDirectory)
		cache := NewInMemoryTenantCache(inner)
		defer cache.Close()

		id := uuid.New()
		inner.On("FindByID", ctx, id).Return(&identity.Tenant{Name: "Acme"}, nil).Twice()

		_, err := cache.FindByID(ctx, id)
		require.NoError(t, err)

		cache.Invalidate(id)

		_, err = cache.FindByID(ctx, id)
		require.NoError(t, err)
		inner.AssertExpectations(t)
	})

	t.Run("invalidate all clears every entry", func(t *testing.T) {
		inner := new(MockTenantDirectory)
		cache := NewInMemoryTenantCache(inner)
		defer cache.Close()

		idA := uuid.New()
		idB := uuid.New()
		inner.On("FindByID", ctx, idA).Return(&identity.Tenant{Name: "Acme"}, nil).Twice()
		inner.On("FindByID", ctx, idB).Return(&identity.Tenant{Name: "Globex"}, nil).Twice()

		_, _ = cache.FindByID(ctx, idA)
		_, _ = cache.FindByID(ctx, idB)

		cache.InvalidateAll()

		_, _ = cache.FindByID(ctx, idA)
		_, _ = cache.FindByID(ctx, idB)
		inner.AssertExpectations(t)
	})
}
