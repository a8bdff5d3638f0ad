package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/assettrack/backend/internal/domain/catalog"
	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormModelCatalog implements catalog.ModelCatalog against the replicated
// models table
type GormModelCatalog struct {
	db *gorm.DB
}

// NewGormModelCatalog creates a new GormModelCatalog
func NewGormModelCatalog(db *gorm.DB) *GormModelCatalog {
	return &GormModelCatalog{db: db}
}

// FindByID finds a model by its ID
func (r *GormModelCatalog) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Model, error) {
	var model catalog.Model
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("%w: model lookup failed: %v", shared.ErrUpstream, err)
	}
	return &model, nil
}

// Ensure GormModelCatalog implements catalog.ModelCatalog
var _ catalog.ModelCatalog = (*GormModelCatalog)(nil)
