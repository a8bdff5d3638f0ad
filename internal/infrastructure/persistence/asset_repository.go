package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/assettrack/backend/internal/domain/asset"
	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the postgres error code for unique constraint violations
const uniqueViolation = "23505"

// orderColumns whitelists the sortable columns for asset listings
var orderColumns = map[string]string{
	"tag":          "tag",
	"name":         "name",
	"status":       "status",
	"category":     "category",
	"last_updated": "last_updated",
	"ingested_at":  "ingested_at",
	"created_at":   "created_at",
}

// GormAssetUnitRepository implements asset.Repository using GORM
type GormAssetUnitRepository struct {
	db *gorm.DB
}

// NewGormAssetUnitRepository creates a new GormAssetUnitRepository
func NewGormAssetUnitRepository(db *gorm.DB) *GormAssetUnitRepository {
	return &GormAssetUnitRepository{db: db}
}

// FindActiveByTag finds the single active record for a tag
func (r *GormAssetUnitRepository) FindActiveByTag(ctx context.Context, tag string) (*asset.AssetUnit, error) {
	var unit asset.AssetUnit
	if err := r.db.WithContext(ctx).
		Where("tag = ? AND active = ?", tag, true).
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// ExistsActiveByTag checks whether an active record exists for a tag
func (r *GormAssetUnitRepository) ExistsActiveByTag(ctx context.Context, tag string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&asset.AssetUnit{}).
		Where("tag = ? AND active = ?", tag, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindLatestByTag finds the most recently updated record for a tag
// regardless of its active flag
func (r *GormAssetUnitRepository) FindLatestByTag(ctx context.Context, tag string) (*asset.AssetUnit, error) {
	var unit asset.AssetUnit
	if err := r.db.WithContext(ctx).
		Where("tag = ?", tag).
		Order("last_updated DESC").
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindAll finds units matching the filter, paginated
func (r *GormAssetUnitRepository) FindAll(ctx context.Context, filter asset.Filter) ([]asset.AssetUnit, error) {
	var units []asset.AssetUnit
	query := r.applyFilter(r.db.WithContext(ctx).Model(&asset.AssetUnit{}), filter)

	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Count counts units matching the filter (ignoring pagination)
func (r *GormAssetUnitRepository) Count(ctx context.Context, filter asset.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&asset.AssetUnit{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new record. A duplicate active tag surfaces as
// shared.ErrAlreadyExists via the partial unique index.
func (r *GormAssetUnitRepository) Create(ctx context.Context, unit *asset.AssetUnit) error {
	if err := r.db.WithContext(ctx).Create(unit).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithLock saves a mutated record with an optimistic version check.
// A stale version yields shared.ErrConcurrencyConflict.
func (r *GormAssetUnitRepository) SaveWithLock(ctx context.Context, unit *asset.AssetUnit) error {
	result := r.db.WithContext(ctx).
		Model(unit).
		Where("id = ? AND version = ?", unit.ID, unit.Version-1).
		Updates(map[string]interface{}{
			"assigned_tenant_id": unit.AssignedTenantID,
			"owner_tenant_id":    unit.OwnerTenantID,
			"active":             unit.Active,
			"status":             unit.Status,
			"sub_status":         unit.SubStatus,
			"last_updated":       unit.LastUpdated,
			"version":            unit.Version,
			"updated_at":         unit.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormAssetUnitRepository) applyFilter(query *gorm.DB, filter asset.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := "last_updated"
	if col, ok := orderColumns[filter.OrderBy]; ok {
		orderBy = col
	}
	orderDir := "DESC"
	if strings.ToLower(filter.OrderDir) == "asc" {
		orderDir = "ASC"
	}
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAssetUnitRepository) applyFilterWithoutPagination(query *gorm.DB, filter asset.Filter) *gorm.DB {
	switch filter.Source {
	case asset.PoolAdmin:
		query = query.Where("assigned_tenant_id IS NULL")
	case asset.PoolTenant:
		query = query.Where("assigned_tenant_id IS NOT NULL")
	}

	if filter.TenantID != nil {
		query = query.Where("owner_tenant_id = ?", *filter.TenantID)
	}
	if filter.AssignedTenantID != nil {
		query = query.Where("assigned_tenant_id = ?", *filter.AssignedTenantID)
	}
	if filter.ModelID != nil {
		query = query.Where("model_id = ?", *filter.ModelID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.RentalFlag != nil {
		query = query.Where("rental_flag = ?", *filter.RentalFlag)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("tag ILIKE ? OR name ILIKE ?", searchTerm, searchTerm)
	}

	return query
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite (used by some tests) reports the constraint in the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Ensure GormAssetUnitRepository implements asset.Repository
var _ asset.Repository = (*GormAssetUnitRepository)(nil)
