package identity

import (
	"context"

	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Tenant is a read-only view of an entry in the external tenant
// directory. The core consumes the directory for target validation and
// conflict/audit enrichment; it never manages tenants.
type Tenant struct {
	shared.BaseEntity
	Name   string `gorm:"size:200;not null"`
	Schema string `gorm:"size:100"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// TenantDirectory is the id → tenant lookup the coordinator depends on.
// Implementations must distinguish "tenant does not exist"
// (shared.ErrNotFound) from "directory unreachable" (shared.ErrUpstream).
type TenantDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
}
