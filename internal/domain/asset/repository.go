package asset

import (
	"context"

	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for asset unit persistence
type Repository interface {
	// FindActiveByTag returns the single active record for a tag, or
	// shared.ErrNotFound when no active record exists
	FindActiveByTag(ctx context.Context, tag string) (*AssetUnit, error)

	// ExistsActiveByTag checks whether an active record exists for a tag
	ExistsActiveByTag(ctx context.Context, tag string) (bool, error)

	// FindLatestByTag returns the most recently updated record for a tag
	// regardless of its active flag, or shared.ErrNotFound when the tag
	// has never been registered
	FindLatestByTag(ctx context.Context, tag string) (*AssetUnit, error)

	// FindAll returns units matching the filter, paginated
	FindAll(ctx context.Context, filter Filter) ([]AssetUnit, error)

	// Count counts units matching the filter (ignoring pagination)
	Count(ctx context.Context, filter Filter) (int64, error)

	// Create inserts a new record. A duplicate active tag surfaces as
	// shared.ErrAlreadyExists (backstopped by the partial unique index).
	Create(ctx context.Context, unit *AssetUnit) error

	// SaveWithLock persists a mutated record with an optimistic version
	// check; a stale version yields shared.ErrConcurrencyConflict
	SaveWithLock(ctx context.Context, unit *AssetUnit) error
}

// HistoryRepository defines the interface for the append-only audit log
type HistoryRepository interface {
	// Append inserts an entry; entries are never updated or deleted
	Append(ctx context.Context, entry *HistoryEntry) error

	// FindByTag returns up to limit entries for a tag, newest first
	FindByTag(ctx context.Context, tag string, limit int) ([]HistoryEntry, error)

	// CountByTag counts entries for a tag
	CountByTag(ctx context.Context, tag string) (int64, error)
}

// PoolSource selects the admin (unassigned) pool vs the tenant pool
type PoolSource string

const (
	// PoolAny applies no pool restriction
	PoolAny PoolSource = ""
	// PoolAdmin matches units with no assigned tenant
	PoolAdmin PoolSource = "admin"
	// PoolTenant matches units held by some tenant
	PoolTenant PoolSource = "tenant"
)

// Filter extends shared.Filter with asset-specific criteria
type Filter struct {
	shared.Filter
	Source           PoolSource
	TenantID         *uuid.UUID
	AssignedTenantID *uuid.UUID
	ModelID          *uuid.UUID
	Status           string
	Category         string
	RentalFlag       *bool
	Active           *bool
}
