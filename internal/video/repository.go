package video

import (
	"context"
	stderrors "errors"

	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const rowColumns = "v.*, u.username AS uploader_name, u.unique_id AS uploader_handle, u.profile_picture AS uploader_avatar"

// hotScore ranks engagement; views are weighted a tenth, without truncation
const hotScore = "(2 * v.like_count + v.comment_count + v.view_count / 10.0) DESC"

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm backed video repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// rows starts a query over live videos joined to their uploaders
func (r *gormRepository) rows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("videos AS v").
		Joins("JOIN users u ON u.id = v.uploader_id").
		Where("v.is_deleted = ?", false)
}

func (r *gormRepository) Create(ctx context.Context, v *Video) error {
	return errors.WithMessage(r.db.WithContext(ctx).Create(v).Error, "create video")
}

func (r *gormRepository) GetRow(ctx context.Context, id uuid.UUID) (*Row, error) {
	var row Row
	err := r.rows(ctx).Select(rowColumns).Where("v.id = ?", id).Take(&row).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, errors.WithMessage(err, "get video")
	}
	return &row, nil
}

func (r *gormRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Video{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	return count > 0, errors.WithMessage(err, "check video")
}

// page counts with an independent query, then fetches one page of rows
func page(query *gorm.DB, p pagination.Params, what string) ([]Row, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.WithMessagef(err, "count %s", what)
	}
	var rows []Row
	if err := query.Select(rowColumns).Offset(p.Offset()).Limit(p.Size).Find(&rows).Error; err != nil {
		return nil, 0, errors.WithMessagef(err, "list %s", what)
	}
	return rows, total, nil
}

func (r *gormRepository) List(ctx context.Context, q ListQuery, p pagination.Params) ([]Row, int64, error) {
	query := r.rows(ctx)
	if !q.IncludePrivate {
		query = query.Where("v.is_public = ?", true)
	}
	if q.UploaderIDs != nil {
		query = query.Where("v.uploader_id IN ?", q.UploaderIDs)
	}

	switch q.Order {
	case OrderHot:
		query = query.Order(hotScore).Order("v.created_at DESC")
	case OrderRecommended:
		query = query.Order("v.view_count DESC").Order("v.created_at DESC")
	default:
		query = query.Order("v.created_at DESC")
	}
	return page(query, p, "videos")
}

func (r *gormRepository) listJoined(ctx context.Context, table string, userID uuid.UUID, p pagination.Params) ([]Row, int64, error) {
	query := r.rows(ctx).
		Joins("JOIN "+table+" j ON j.video_id = v.id").
		Where("j.user_id = ?", userID).
		Order("j.created_at DESC")
	return page(query, p, table)
}

func (r *gormRepository) ListLiked(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]Row, int64, error) {
	return r.listJoined(ctx, "likes", userID, p)
}

func (r *gormRepository) ListCollected(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]Row, int64, error) {
	return r.listJoined(ctx, "collections", userID, p)
}

func (r *gormRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Row, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []Row
	err := r.rows(ctx).Select(rowColumns).Where("v.id IN ?", ids).Find(&rows).Error
	return rows, errors.WithMessage(err, "list videos by id")
}

func (r *gormRepository) CountByUploader(ctx context.Context, uploaderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Video{}).
		Where("uploader_id = ? AND is_deleted = ?", uploaderID, false).
		Count(&count).Error
	return count, errors.WithMessage(err, "count uploads")
}

func (r *gormRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&Video{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	return errors.WithMessage(err, "increment views")
}

func (r *gormRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Video{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{"is_deleted": true, "is_public": false})
	if result.Error != nil {
		return errors.WithMessage(result.Error, "delete video")
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}
