package asset

import (
	"strings"
	"time"

	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TagLength is the fixed length of every asset tag.
const TagLength = 24

// AssetUnit represents one discretely-identified physical unit.
// The tag is the natural key; the registry allows many historical rows per
// tag but at most one with Active = true (partial unique index on tag).
type AssetUnit struct {
	shared.BaseAggregateRoot
	Tag              string     `gorm:"size:24;not null;index;uniqueIndex:idx_asset_units_active_tag,where:active"`
	ModelID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	OwnerTenantID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssignedTenantID *uuid.UUID `gorm:"type:uuid;index"` // nil means the unassigned/admin pool
	Active           bool       `gorm:"not null;default:true"`
	Name             string     `gorm:"size:200"`
	Lot              string     `gorm:"size:100"`
	Status           string     `gorm:"size:50"`
	SubStatus        string     `gorm:"size:50"`
	Category         string     `gorm:"size:50"`
	RentalFlag       bool       `gorm:"not null;default:false"`
	LastUpdated      time.Time  `gorm:"not null"`
	IngestedAt       time.Time  `gorm:"not null"`
	ExpiresAt        *time.Time
}

// TableName returns the table name for GORM
func (AssetUnit) TableName() string {
	return "asset_units"
}

// NewAssetUnitParams holds the inputs for creating a unit.
type NewAssetUnitParams struct {
	Tag              string
	ModelID          uuid.UUID
	OwnerTenantID    uuid.UUID
	AssignedTenantID *uuid.UUID
	Name             string
	Lot              string
	Status           string
	SubStatus        string
	Category         string
	RentalFlag       bool
	ExpiresAt        *time.Time
}

// NewAssetUnit creates a new active asset unit
func NewAssetUnit(p NewAssetUnitParams) (*AssetUnit, error) {
	tag, err := NormalizeTag(p.Tag)
	if err != nil {
		return nil, err
	}
	if p.ModelID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Model reference cannot be empty")
	}
	if p.OwnerTenantID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Owner tenant cannot be empty")
	}

	now := time.Now()
	unit := &AssetUnit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Tag:               tag,
		ModelID:           p.ModelID,
		OwnerTenantID:     p.OwnerTenantID,
		AssignedTenantID:  p.AssignedTenantID,
		Active:            true,
		Name:              p.Name,
		Lot:               p.Lot,
		Status:            p.Status,
		SubStatus:         p.SubStatus,
		Category:          p.Category,
		RentalFlag:        p.RentalFlag,
		LastUpdated:       now,
		IngestedAt:        now,
		ExpiresAt:         p.ExpiresAt,
	}
	return unit, nil
}

// NormalizeTag uppercases and trims a raw tag and validates its length
func NormalizeTag(raw string) (string, error) {
	tag := strings.ToUpper(strings.TrimSpace(raw))
	if len(tag) != TagLength {
		return "", shared.NewDomainError("VALIDATION_FAILED", "Tag must be exactly 24 characters")
	}
	return tag, nil
}

// HeldBy reports whether the unit is currently assigned to the given tenant
func (u *AssetUnit) HeldBy(tenantID uuid.UUID) bool {
	return u.AssignedTenantID != nil && *u.AssignedTenantID == tenantID
}

// Deactivate retires the record. The row is kept for audit continuity;
// deactivation is the only form of removal the registry supports.
func (u *AssetUnit) Deactivate() error {
	if !u.Active {
		return shared.ErrInvalidState
	}
	u.Active = false
	u.touch()
	return nil
}

// AssignTo hands the unit to a tenant, optionally transferring ownership.
// Only valid on an active record; the coordinator is responsible for
// making sure no other tenant currently holds the tag.
func (u *AssetUnit) AssignTo(tenantID uuid.UUID, transferOwnership bool) error {
	if !u.Active {
		return shared.ErrInvalidState
	}
	target := tenantID
	u.AssignedTenantID = &target
	if transferOwnership {
		u.OwnerTenantID = tenantID
	}
	u.touch()
	return nil
}

// Unassign moves the unit back to the unassigned/admin pool while keeping
// it active
func (u *AssetUnit) Unassign() error {
	if !u.Active {
		return shared.ErrInvalidState
	}
	u.AssignedTenantID = nil
	u.touch()
	return nil
}

// Successor builds the replacement active record a forced reassignment (or
// a reassignment of an unknown tag) creates for the target tenant. The
// descriptive fields carry over; ownership moves only when requested.
func (u *AssetUnit) Successor(targetTenantID uuid.UUID, transferOwnership bool) *AssetUnit {
	now := time.Now()
	target := targetTenantID
	next := &AssetUnit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Tag:               u.Tag,
		ModelID:           u.ModelID,
		OwnerTenantID:     u.OwnerTenantID,
		AssignedTenantID:  &target,
		Active:            true,
		Name:              u.Name,
		Lot:               u.Lot,
		Status:            u.Status,
		SubStatus:         u.SubStatus,
		Category:          u.Category,
		RentalFlag:        u.RentalFlag,
		LastUpdated:       now,
		IngestedAt:        u.IngestedAt,
		ExpiresAt:         u.ExpiresAt,
	}
	if transferOwnership {
		next.OwnerTenantID = targetTenantID
	}
	return next
}

func (u *AssetUnit) touch() {
	u.LastUpdated = time.Now()
	u.UpdatedAt = u.LastUpdated
	u.IncrementVersion()
}
