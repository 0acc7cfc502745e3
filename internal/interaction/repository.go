package interaction

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm backed like/collection repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) VideoExists(ctx context.Context, videoID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("videos").
		Where("id = ? AND is_deleted = ?", videoID, false).
		Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "check video exists")
	}
	return count > 0, nil
}

// LockVideo reports whether the video is live and locks its row until the
// surrounding transaction ends, so toggles on one video recount one at a time
func (r *gormRepository) LockVideo(ctx context.Context, videoID uuid.UUID) (bool, error) {
	var row struct{ ID uuid.UUID }
	err := r.db.WithContext(ctx).Table("videos").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ? AND is_deleted = ?", videoID, false).
		Take(&row).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.WithMessage(err, "lock video")
	}
	return true, nil
}

func (r *gormRepository) Exists(ctx context.Context, kind Kind, userID, videoID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(kind.model()).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&count).Error
	if err != nil {
		return false, errors.WithMessagef(err, "check %s", kind)
	}
	return count > 0, nil
}

// Add inserts the relation; an existing row is left alone
func (r *gormRepository) Add(ctx context.Context, kind Kind, userID, videoID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(kind.newRow(userID, videoID)).Error
	return errors.WithMessagef(err, "add %s", kind)
}

func (r *gormRepository) Remove(ctx context.Context, kind Kind, userID, videoID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Delete(kind.model()).Error
	return errors.WithMessagef(err, "remove %s", kind)
}

func (r *gormRepository) Count(ctx context.Context, kind Kind, videoID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(kind.model()).Where("video_id = ?", videoID).Count(&count).Error; err != nil {
		return 0, errors.WithMessagef(err, "count %s", kind)
	}
	return count, nil
}

func (r *gormRepository) SetCounter(ctx context.Context, kind Kind, videoID uuid.UUID, value int64) error {
	err := r.db.WithContext(ctx).Table("videos").
		Where("id = ?", videoID).
		Update(kind.CounterColumn(), value).Error
	return errors.WithMessagef(err, "update %s", kind.CounterColumn())
}
