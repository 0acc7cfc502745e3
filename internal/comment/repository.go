package comment

import (
	"context"
	stderrors "errors"

	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm backed comment repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) GetVideo(ctx context.Context, id uuid.UUID) (*VideoRef, error) {
	var ref VideoRef
	err := r.db.WithContext(ctx).Table("videos").
		Select("id, uploader_id, is_deleted").
		Where("id = ?", id).
		Take(&ref).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, errors.WithMessage(err, "get video")
	}
	return &ref, nil
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var c Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, errors.WithMessage(err, "get comment")
	}
	return &c, nil
}

// LockVideo reads the video and holds a row lock on it until the transaction
// ends. Every transaction that recounts comment_count takes it first.
func (r *gormRepository) LockVideo(ctx context.Context, id uuid.UUID) (*VideoRef, error) {
	var ref VideoRef
	err := r.db.WithContext(ctx).Table("videos").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id, uploader_id, is_deleted").
		Where("id = ?", id).
		Take(&ref).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, errors.WithMessage(err, "lock video")
	}
	return &ref, nil
}

// LockComment reads the comment and holds a row lock on it until the
// transaction ends, serialising reaction recounts on that comment
func (r *gormRepository) LockComment(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var c Comment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&c).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, errors.WithMessage(err, "lock comment")
	}
	return &c, nil
}

func (r *gormRepository) Create(ctx context.Context, c *Comment) error {
	return errors.WithMessage(r.db.WithContext(ctx).Create(c).Error, "create comment")
}

func (r *gormRepository) List(ctx context.Context, videoID uuid.UUID, parentID *uuid.UUID, order string, p pagination.Params) ([]Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&Comment{}).Where("video_id = ?", videoID)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.WithMessage(err, "count comments")
	}

	if order == OrderHottest {
		query = query.Order("like_count DESC").Order("created_at DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	var comments []Comment
	if err := query.Offset(p.Offset()).Limit(p.Size).Find(&comments).Error; err != nil {
		return nil, 0, errors.WithMessage(err, "list comments")
	}
	return comments, total, nil
}

func (r *gormRepository) ListByVideo(ctx context.Context, videoID uuid.UUID) ([]Comment, error) {
	var comments []Comment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	return comments, errors.WithMessage(err, "list video comments")
}

func (r *gormRepository) Edges(ctx context.Context, videoID uuid.UUID) ([]Edge, error) {
	var edges []Edge
	err := r.db.WithContext(ctx).Model(&Comment{}).
		Select("id, parent_id").
		Where("video_id = ?", videoID).
		Scan(&edges).Error
	return edges, errors.WithMessage(err, "load comment edges")
}

func (r *gormRepository) Authors(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Author, error) {
	authors := make(map[uuid.UUID]Author, len(ids))
	if len(ids) == 0 {
		return authors, nil
	}
	var rows []Author
	err := r.db.WithContext(ctx).Table("users").
		Select("id, username, profile_picture").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.WithMessage(err, "load comment authors")
	}
	for _, a := range rows {
		authors[a.ID] = a
	}
	return authors, nil
}

// DeleteCascade removes the interactions of the given comments, then the comments
func (r *gormRepository) DeleteCascade(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	db := r.db.WithContext(ctx)
	if err := db.Where("comment_id IN ?", ids).Delete(&Interaction{}).Error; err != nil {
		return errors.WithMessage(err, "delete comment interactions")
	}
	if err := db.Where("id IN ?", ids).Delete(&Comment{}).Error; err != nil {
		return errors.WithMessage(err, "delete comments")
	}
	return nil
}

func (r *gormRepository) RecountVideoComments(ctx context.Context, videoID uuid.UUID) (int64, error) {
	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&Comment{}).Where("video_id = ?", videoID).Count(&count).Error; err != nil {
		return 0, errors.WithMessage(err, "count video comments")
	}
	err := db.Table("videos").Where("id = ?", videoID).Update("comment_count", count).Error
	if err != nil {
		return 0, errors.WithMessage(err, "update video comment count")
	}
	return count, nil
}

func (r *gormRepository) GetInteraction(ctx context.Context, userID, commentID uuid.UUID) (*Interaction, error) {
	var i Interaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		First(&i).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithMessage(err, "get comment interaction")
	}
	return &i, nil
}

// CreateInteraction inserts a reaction; an existing row for the same user and
// comment is left alone
func (r *gormRepository) CreateInteraction(ctx context.Context, i *Interaction) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(i).Error
	return errors.WithMessage(err, "create comment interaction")
}

func (r *gormRepository) UpdateInteraction(ctx context.Context, id uuid.UUID, isLike bool) error {
	err := r.db.WithContext(ctx).Model(&Interaction{}).
		Where("id = ?", id).
		Update("is_like", isLike).Error
	return errors.WithMessage(err, "update comment interaction")
}

func (r *gormRepository) DeleteInteraction(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Interaction{}).Error
	return errors.WithMessage(err, "delete comment interaction")
}

func (r *gormRepository) RecountReactions(ctx context.Context, commentID uuid.UUID) (int64, int64, error) {
	db := r.db.WithContext(ctx)
	var likes, dislikes int64
	if err := db.Model(&Interaction{}).Where("comment_id = ? AND is_like = ?", commentID, true).Count(&likes).Error; err != nil {
		return 0, 0, errors.WithMessage(err, "count comment likes")
	}
	if err := db.Model(&Interaction{}).Where("comment_id = ? AND is_like = ?", commentID, false).Count(&dislikes).Error; err != nil {
		return 0, 0, errors.WithMessage(err, "count comment dislikes")
	}
	err := db.Model(&Comment{}).Where("id = ?", commentID).
		Updates(map[string]interface{}{"like_count": likes, "dislike_count": dislikes}).Error
	if err != nil {
		return 0, 0, errors.WithMessage(err, "update comment counters")
	}
	return likes, dislikes, nil
}
