package asset

import (
	"time"

	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// HistoryEntry is one immutable row of the ownership-change audit trail.
// Entries are only ever appended; nothing updates or deletes them.
type HistoryEntry struct {
	shared.BaseEntity
	Tag               string     `gorm:"size:24;not null;index"`
	FromTenantID      *uuid.UUID `gorm:"type:uuid"`
	ToTenantID        *uuid.UUID `gorm:"type:uuid"`
	TransferOwnership bool       `gorm:"not null;default:false"`
	Reason            string     `gorm:"size:500"`
	ActorID           uuid.UUID  `gorm:"type:uuid;not null"`
	Timestamp         time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (HistoryEntry) TableName() string {
	return "asset_history_entries"
}

// NewHistoryEntry creates an audit entry for one ownership change
func NewHistoryEntry(tag string, from, to *uuid.UUID, transferOwnership bool, reason string, actorID uuid.UUID) *HistoryEntry {
	return &HistoryEntry{
		BaseEntity:        shared.NewBaseEntity(),
		Tag:               tag,
		FromTenantID:      from,
		ToTenantID:        to,
		TransferOwnership: transferOwnership,
		Reason:            reason,
		ActorID:           actorID,
		Timestamp:         time.Now(),
	}
}
