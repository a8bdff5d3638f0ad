package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/assettrack/backend/internal/domain/identity"
	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTenantDirectory implements identity.TenantDirectory against the
// replicated tenants table
type GormTenantDirectory struct {
	db *gorm.DB
}

// NewGormTenantDirectory creates a new GormTenantDirectory
func NewGormTenantDirectory(db *gorm.DB) *GormTenantDirectory {
	return &GormTenantDirectory{db: db}
}

// FindByID finds a tenant by its ID. A missing row is shared.ErrNotFound;
// any other failure is reported as shared.ErrUpstream so callers can tell
// "no such tenant" apart from "directory unreachable".
func (r *GormTenantDirectory) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	var tenant identity.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("%w: tenant lookup failed: %v", shared.ErrUpstream, err)
	}
	return &tenant, nil
}

// Ensure GormTenantDirectory implements identity.TenantDirectory
var _ identity.TenantDirectory = (*GormTenantDirectory)(nil)
