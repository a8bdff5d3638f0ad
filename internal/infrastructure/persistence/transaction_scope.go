package persistence

import (
	"context"

	appasset "github.com/assettrack/backend/internal/application/asset"
	"github.com/assettrack/backend/internal/domain/asset"
	"gorm.io/gorm"
)

// GormTransactionScope implements the application transaction scope on top
// of GORM transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the function within a database transaction. The
// repositories handed to fn are bound to the transaction, so a registry
// mutation and its audit append commit or roll back together.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appasset.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) AssetRepo() asset.Repository {
	return NewGormAssetUnitRepository(r.tx)
}

func (r *gormTransactionalRepositories) HistoryRepo() asset.HistoryRepository {
	return NewGormHistoryRepository(r.tx)
}

var _ appasset.TransactionScope = (*GormTransactionScope)(nil)
var _ appasset.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
