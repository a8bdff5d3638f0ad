package asset

import (
	"time"

	"github.com/assettrack/backend/internal/domain/asset"
	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AssetUnitResponse is the service-level view of an asset unit
type AssetUnitResponse struct {
	ID               uuid.UUID  `json:"id"`
	Tag              string     `json:"tag"`
	ModelID          uuid.UUID  `json:"model_id"`
	OwnerTenantID    uuid.UUID  `json:"owner_tenant_id"`
	AssignedTenantID *uuid.UUID `json:"assigned_tenant_id"`
	Active           bool       `json:"active"`
	Name             string     `json:"name,omitempty"`
	Lot              string     `json:"lot,omitempty"`
	Status           string     `json:"status,omitempty"`
	SubStatus        string     `json:"sub_status,omitempty"`
	Category         string     `json:"category,omitempty"`
	RentalFlag       bool       `json:"rental_flag"`
	LastUpdated      time.Time  `json:"last_updated"`
	IngestedAt       time.Time  `json:"ingested_at"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	Version          int        `json:"version"`
}

// ToAssetUnitResponse converts a domain unit to its response form
func ToAssetUnitResponse(u *asset.AssetUnit) AssetUnitResponse {
	return AssetUnitResponse{
		ID:               u.ID,
		Tag:              u.Tag,
		ModelID:          u.ModelID,
		OwnerTenantID:    u.OwnerTenantID,
		AssignedTenantID: u.AssignedTenantID,
		Active:           u.Active,
		Name:             u.Name,
		Lot:              u.Lot,
		Status:           u.Status,
		SubStatus:        u.SubStatus,
		Category:         u.Category,
		RentalFlag:       u.RentalFlag,
		LastUpdated:      u.LastUpdated,
		IngestedAt:       u.IngestedAt,
		ExpiresAt:        u.ExpiresAt,
		Version:          u.Version,
	}
}

// HistoryEntryResponse is the service-level view of an audit entry
type HistoryEntryResponse struct {
	ID                uuid.UUID  `json:"id"`
	Tag               string     `json:"tag"`
	FromTenantID      *uuid.UUID `json:"from_tenant_id"`
	ToTenantID        *uuid.UUID `json:"to_tenant_id"`
	TransferOwnership bool       `json:"transfer_ownership"`
	Reason            string     `json:"reason,omitempty"`
	ActorID           uuid.UUID  `json:"actor_id"`
	Timestamp         time.Time  `json:"timestamp"`
}

// ToHistoryEntryResponse converts a domain entry to its response form
func ToHistoryEntryResponse(e *asset.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:                e.ID,
		Tag:               e.Tag,
		FromTenantID:      e.FromTenantID,
		ToTenantID:        e.ToTenantID,
		TransferOwnership: e.TransferOwnership,
		Reason:            e.Reason,
		ActorID:           e.ActorID,
		Timestamp:         e.Timestamp,
	}
}

// CreateAssetParams holds the inputs for administrative unit creation
type CreateAssetParams struct {
	Tag              string
	ModelID          uuid.UUID
	TenantID         uuid.UUID
	AssignedTenantID *uuid.UUID
	Name             string
	Lot              string
	Status           string
	SubStatus        string
	Category         string
	RentalFlag       bool
	ExpiresAt        *time.Time
}

// ReassignParams holds the transient reassignment request
type ReassignParams struct {
	TargetTenantID    uuid.UUID
	TransferOwnership bool
	Reason            string
	Force             bool
}

// BulkItemResult is the per-tag outcome of a bulk operation: either the
// updated record or the error that isolated this item from the rest of
// the batch.
type BulkItemResult struct {
	Tag  string
	Unit *AssetUnitResponse
	Err  error
}

// ListParams bundles the caller's filter set with pagination
type ListParams struct {
	Filters  asset.FilterSet
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// buildFilter converts the caller-facing filter set into the typed
// repository filter. Values arrive as strings (query parameters) and are
// parsed here; a malformed id or flag is a validation failure, not a
// silent skip.
func buildFilter(p ListParams) (asset.Filter, error) {
	f := asset.Filter{Filter: shared.DefaultFilter()}
	if p.Page > 0 {
		f.Page = p.Page
	}
	if p.PageSize > 0 {
		f.PageSize = p.PageSize
	}
	if p.OrderBy != "" {
		f.OrderBy = p.OrderBy
	}
	if p.OrderDir != "" {
		f.OrderDir = p.OrderDir
	}

	for key, raw := range p.Filters {
		value, ok := raw.(string)
		if !ok || value == "" {
			continue
		}
		switch key {
		case asset.FilterKeySearch:
			f.Search = value
		case asset.FilterKeySource:
			switch asset.PoolSource(value) {
			case asset.PoolAdmin, asset.PoolTenant:
				f.Source = asset.PoolSource(value)
			default:
				return f, shared.NewDomainError("VALIDATION_FAILED", "source must be admin or tenant")
			}
		case asset.FilterKeyTenantID:
			id, err := uuid.Parse(value)
			if err != nil {
				return f, shared.NewDomainError("VALIDATION_FAILED", "tenantId is not a valid UUID")
			}
			f.TenantID = &id
		case asset.FilterKeyAssignedTenantID:
			id, err := uuid.Parse(value)
			if err != nil {
				return f, shared.NewDomainError("VALIDATION_FAILED", "assignedTenantId is not a valid UUID")
			}
			f.AssignedTenantID = &id
		case asset.FilterKeyModelID:
			id, err := uuid.Parse(value)
			if err != nil {
				return f, shared.NewDomainError("VALIDATION_FAILED", "modelId is not a valid UUID")
			}
			f.ModelID = &id
		case asset.FilterKeyStatus:
			f.Status = value
		case asset.FilterKeyCategory:
			f.Category = value
		case asset.FilterKeyRentalFlag:
			b, err := parseBool(value)
			if err != nil {
				return f, shared.NewDomainError("VALIDATION_FAILED", "rentalFlag must be true or false")
			}
			f.RentalFlag = &b
		case asset.FilterKeyActive:
			b, err := parseBool(value)
			if err != nil {
				return f, shared.NewDomainError("VALIDATION_FAILED", "active must be true or false")
			}
			f.Active = &b
		}
	}
	return f, nil
}

func parseBool(v string) (bool, error) {
	switch v {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, shared.ErrInvalidInput
}
