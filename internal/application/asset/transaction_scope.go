package asset

import (
	"context"

	"github.com/assettrack/backend/internal/domain/asset"
)

// TransactionScope provides transactional access to the registry and the
// audit log. The coordinator's read-check-write sequence for a tag runs
// entirely inside one Execute call, so the registry mutation and its
// history append commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to the same
// underlying transaction.
type TransactionalRepositories interface {
	// AssetRepo returns the asset repository scoped to the current transaction
	AssetRepo() asset.Repository
	// HistoryRepo returns the history repository scoped to the current transaction
	HistoryRepo() asset.HistoryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests and in-memory setups.
type NoOpTransactionScope struct {
	assetRepo   asset.Repository
	historyRepo asset.HistoryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(assetRepo asset.Repository, historyRepo asset.HistoryRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		assetRepo:   assetRepo,
		historyRepo: historyRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AssetRepo returns the asset repository.
func (s *NoOpTransactionScope) AssetRepo() asset.Repository {
	return s.assetRepo
}

// HistoryRepo returns the history repository.
func (s *NoOpTransactionScope) HistoryRepo() asset.HistoryRepository {
	return s.historyRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
