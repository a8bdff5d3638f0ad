package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/assettrack/backend/internal/domain/asset"
	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB wires gorm's postgres dialect over sqlmock so the SQL the
// repositories emit against production can be asserted directly
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormAssetUnitRepository_SearchUsesILike(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormAssetUnitRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "asset_units" WHERE \(tag ILIKE \$1 OR name ILIKE \$2\)`).
		WithArgs("%pump%", "%pump%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	filter := asset.Filter{Filter: shared.DefaultFilter()}
	filter.Search = "pump"

	count, err := repo.Count(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormAssetUnitRepository_SaveWithLockStaleRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormAssetUnitRepository(db)

	unit, err := asset.NewAssetUnit(asset.NewAssetUnitParams{
		Tag:           tagOf('A'),
		ModelID:       uuid.New(),
		OwnerTenantID: uuid.New(),
	})
	require.NoError(t, err)
	require.NoError(t, unit.AssignTo(uuid.New(), false))

	mock.ExpectExec(`UPDATE "asset_units" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SaveWithLock(context.Background(), unit)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTenantDirectory_FindByID(t *testing.T) {
	t.Run("missing row is not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormTenantDirectory(db)

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("query failure is an upstream error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormTenantDirectory(db)

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1`).
			WillReturnError(errors.New("connection reset by peer"))

		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrUpstream)
	})
}

func TestGormModelCatalog_FindByID(t *testing.T) {
	t.Run("missing row is not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormModelCatalog(db)

		mock.ExpectQuery(`SELECT \* FROM "models" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("query failure is an upstream error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormModelCatalog(db)

		mock.ExpectQuery(`SELECT \* FROM "models" WHERE id = \$1`).
			WillReturnError(errors.New("driver: bad connection"))

		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrUpstream)
	})
}
