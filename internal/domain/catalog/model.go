package catalog

import (
	"context"

	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Model is a read-only view of an entry in the external model catalog,
// referenced by asset units and validated on create.
type Model struct {
	shared.BaseEntity
	Name         string `gorm:"size:200;not null"`
	Manufacturer string `gorm:"size:200"`
	Category     string `gorm:"size:50"`
}

// TableName returns the table name for GORM
func (Model) TableName() string {
	return "models"
}

// ModelCatalog is the id → model lookup used to validate model
// references. Missing models surface as shared.ErrNotFound, catalog
// outages as shared.ErrUpstream.
type ModelCatalog interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Model, error)
}
