package persistence

import (
	"context"

	"github.com/assettrack/backend/internal/domain/asset"
	"gorm.io/gorm"
)

// GormHistoryRepository implements asset.HistoryRepository using GORM
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GormHistoryRepository
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append inserts an audit entry. Entries are never updated or deleted.
func (r *GormHistoryRepository) Append(ctx context.Context, entry *asset.HistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByTag returns up to limit entries for a tag, newest first
func (r *GormHistoryRepository) FindByTag(ctx context.Context, tag string, limit int) ([]asset.HistoryEntry, error) {
	var entries []asset.HistoryEntry
	if err := r.db.WithContext(ctx).
		Where("tag = ?", tag).
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByTag counts entries for a tag
func (r *GormHistoryRepository) CountByTag(ctx context.Context, tag string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&asset.HistoryEntry{}).
		Where("tag = ?", tag).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormHistoryRepository implements asset.HistoryRepository
var _ asset.HistoryRepository = (*GormHistoryRepository)(nil)
