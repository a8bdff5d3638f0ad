package persistence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/assettrack/backend/internal/domain/asset"
	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&asset.AssetUnit{}, &asset.HistoryEntry{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM asset_units")
		db.Exec("DELETE FROM asset_history_entries")
	})
	return db
}

func tagOf(r byte) string {
	return strings.Repeat(string(r), asset.TagLength)
}

func seedUnit(t *testing.T, db *gorm.DB, tag string, assigned *uuid.UUID) *asset.AssetUnit {
	t.Helper()
	unit, err := asset.NewAssetUnit(asset.NewAssetUnitParams{
		Tag:              tag,
		ModelID:          uuid.New(),
		OwnerTenantID:    uuid.New(),
		AssignedTenantID: assigned,
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(unit).Error)
	return unit
}

func TestGormAssetUnitRepository_FindActiveByTag(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAssetUnitRepository(db)
	ctx := context.Background()

	seeded := seedUnit(t, db, tagOf('A'), nil)

	t.Run("finds the active record", func(t *testing.T) {
		unit, err := repo.FindActiveByTag(ctx, tagOf('A'))
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, unit.ID)
		assert.True(t, unit.Active)
	})

	t.Run("unknown tag is not found", func(t *testing.T) {
		_, err := repo.FindActiveByTag(ctx, tagOf('Z'))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("a retired record does not match", func(t *testing.T) {
		retired := seedUnit(t, db, tagOf('B'), nil)
		require.NoError(t, retired.Deactivate())
		require.NoError(t, repo.SaveWithLock(ctx, retired))

		_, err := repo.FindActiveByTag(ctx, tagOf('B'))
		assert.ErrorIs(t, err, shared.ErrNotFound)

		exists, err := repo.ExistsActiveByTag(ctx, tagOf('B'))
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormAssetUnitRepository_FindLatestByTag(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAssetUnitRepository(db)
	ctx := context.Background()

	older := seedUnit(t, db, tagOf('C'), nil)
	require.NoError(t, db.Model(older).Updates(map[string]interface{}{
		"active":       false,
		"last_updated": time.Now().Add(-2 * time.Hour),
	}).Error)

	newer := seedUnit(t, db, tagOf('C'), nil)
	require.NoError(t, db.Model(newer).Updates(map[string]interface{}{
		"active":       false,
		"last_updated": time.Now().Add(-time.Hour),
	}).Error)

	t.Run("returns the most recent record regardless of active flag", func(t *testing.T) {
		unit, err := repo.FindLatestByTag(ctx, tagOf('C'))
		require.NoError(t, err)
		assert.Equal(t, newer.ID, unit.ID)
		assert.False(t, unit.Active)
	})

	t.Run("never-registered tag is not found", func(t *testing.T) {
		_, err := repo.FindLatestByTag(ctx, tagOf('Z'))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormAssetUnitRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAssetUnitRepository(db)
	ctx := context.Background()

	first, err := asset.NewAssetUnit(asset.NewAssetUnitParams{
		Tag:           tagOf('D'),
		ModelID:       uuid.New(),
		OwnerTenantID: uuid.New(),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	t.Run("second active record for the tag is rejected", func(t *testing.T) {
		dup, err := asset.NewAssetUnit(asset.NewAssetUnitParams{
			Tag:           tagOf('D'),
			ModelID:       uuid.New(),
			OwnerTenantID: uuid.New(),
		})
		require.NoError(t, err)

		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("a retired record does not block a new active one", func(t *testing.T) {
		require.NoError(t, first.Deactivate())
		require.NoError(t, repo.SaveWithLock(ctx, first))

		replacement := first.Successor(uuid.New(), false)
		assert.NoError(t, repo.Create(ctx, replacement))
	})
}

func TestGormAssetUnitRepository_SaveWithLock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAssetUnitRepository(db)
	ctx := context.Background()

	t.Run("persists the mutation and the bumped version", func(t *testing.T) {
		unit := seedUnit(t, db, tagOf('E'), nil)
		target := uuid.New()
		require.NoError(t, unit.AssignTo(target, false))

		require.NoError(t, repo.SaveWithLock(ctx, unit))

		reloaded, err := repo.FindActiveByTag(ctx, tagOf('E'))
		require.NoError(t, err)
		require.NotNil(t, reloaded.AssignedTenantID)
		assert.Equal(t, target, *reloaded.AssignedTenantID)
		assert.Equal(t, 2, reloaded.Version)
	})

	t.Run("a stale version is a concurrency conflict", func(t *testing.T) {
		unit := seedUnit(t, db, tagOf('F'), nil)
		require.NoError(t, unit.AssignTo(uuid.New(), false))
		require.NoError(t, repo.SaveWithLock(ctx, unit))

		// replay the same write; the row is already at this version
		err := repo.SaveWithLock(ctx, unit)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormAssetUnitRepository_FindAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAssetUnitRepository(db)
	ctx := context.Background()

	holder := uuid.New()
	pooled := seedUnit(t, db, tagOf('G'), nil)
	held := seedUnit(t, db, tagOf('H'), &holder)

	t.Run("admin pool excludes held units", func(t *testing.T) {
		filter := asset.Filter{Filter: shared.DefaultFilter(), Source: asset.PoolAdmin}

		units, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, units, 1)
		assert.Equal(t, pooled.ID, units[0].ID)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("tenant pool excludes unassigned units", func(t *testing.T) {
		filter := asset.Filter{Filter: shared.DefaultFilter(), Source: asset.PoolTenant}

		units, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, units, 1)
		assert.Equal(t, held.ID, units[0].ID)
	})

	t.Run("assigned tenant filter matches the holder", func(t *testing.T) {
		filter := asset.Filter{Filter: shared.DefaultFilter(), AssignedTenantID: &holder}

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("orders by a whitelisted column", func(t *testing.T) {
		filter := asset.Filter{Filter: shared.DefaultFilter()}
		filter.OrderBy = "tag"
		filter.OrderDir = "asc"

		units, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, units, 2)
		assert.Equal(t, tagOf('G'), units[0].Tag)
		assert.Equal(t, tagOf('H'), units[1].Tag)
	})

	t.Run("pagination slices the result", func(t *testing.T) {
		filter := asset.Filter{Filter: shared.DefaultFilter()}
		filter.Page = 2
		filter.PageSize = 1
		filter.OrderBy = "tag"
		filter.OrderDir = "asc"

		units, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, units, 1)
		assert.Equal(t, tagOf('H'), units[0].Tag)
	})
}
