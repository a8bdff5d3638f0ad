package asset

import (
	"fmt"

	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrAssignmentConflict is the sentinel for "tag is actively held by a
// different tenant". Callers match it with errors.Is and recover the
// details with errors.As against *ConflictError.
var ErrAssignmentConflict = shared.NewDomainError("ASSIGNMENT_CONFLICT", "Asset is actively assigned to another tenant")

// ConflictError carries enough information for the caller to decide
// whether to re-issue the reassignment with force set.
type ConflictError struct {
	Tag                   string
	ConflictingTenantID   uuid.UUID
	ConflictingTenantName string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.ConflictingTenantName != "" {
		return fmt.Sprintf("asset %s is actively assigned to tenant %q", e.Tag, e.ConflictingTenantName)
	}
	return fmt.Sprintf("asset %s is actively assigned to tenant %s", e.Tag, e.ConflictingTenantID)
}

// Unwrap lets errors.Is(err, ErrAssignmentConflict) succeed
func (e *ConflictError) Unwrap() error {
	return ErrAssignmentConflict
}

// NewConflictError creates a conflict error for a contested tag
func NewConflictError(tag string, tenantID uuid.UUID, tenantName string) *ConflictError {
	return &ConflictError{
		Tag:                   tag,
		ConflictingTenantID:   tenantID,
		ConflictingTenantName: tenantName,
	}
}
