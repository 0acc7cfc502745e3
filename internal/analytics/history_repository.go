package analytics

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormHistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a gorm backed watch history repository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &gormHistoryRepository{db: db}
}

// Upsert records the latest watch of a video, replacing the previous one
func (r *gormHistoryRepository) Upsert(ctx context.Context, h *WatchHistory) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"watch_seconds", "last_watch_at"}),
	}).Create(h).Error
	return errors.WithMessage(err, "upsert watch history")
}
