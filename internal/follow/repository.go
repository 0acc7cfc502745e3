package follow

import (
	"context"
	"strings"

	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const userColumns = "u.id, u.unique_id AS handle, u.username, u.full_name, u.bio, u.profile_picture, f.created_at AS followed_at"

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm backed follow repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("users").Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.WithMessage(err, "check user exists")
	}
	return count > 0, nil
}

func (r *gormRepository) Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "check follow")
	}
	return count > 0, nil
}

// Create inserts the edge; an existing edge is left alone
func (r *gormRepository) Create(ctx context.Context, f *Follow) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(f).Error
	return errors.WithMessage(err, "create follow")
}

func (r *gormRepository) Delete(ctx context.Context, followerID, followedID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&Follow{}).Error
	return errors.WithMessage(err, "delete follow")
}

func (r *gormRepository) count(ctx context.Context, column string, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Follow{}).Where(column+" = ?", userID).Count(&count).Error; err != nil {
		return 0, errors.WithMessage(err, "count follows")
	}
	return count, nil
}

func (r *gormRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.count(ctx, "followed_id", userID)
}

func (r *gormRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.count(ctx, "follower_id", userID)
}

// likePattern escapes LIKE metacharacters in a user supplied search term
func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(search) + "%"
}

// list joins follows to users. ownColumn selects the listed user's edges, joinColumn the row user.
func (r *gormRepository) list(ctx context.Context, ownColumn, joinColumn string, userID uuid.UUID, search, order string, p pagination.Params) ([]UserRow, int64, error) {
	query := r.db.WithContext(ctx).Table("follows AS f").
		Joins("JOIN users u ON u.id = f."+joinColumn).
		Where("f."+ownColumn+" = ?", userID)
	if search = strings.TrimSpace(search); search != "" {
		pattern := likePattern(search)
		query = query.Where("(u.username ILIKE ? OR u.unique_id ILIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.WithMessage(err, "count follow list")
	}
	if total == 0 {
		return []UserRow{}, 0, nil
	}

	var rows []UserRow
	err := query.Select(userColumns).
		Order("f.created_at " + order).
		Offset(p.Offset()).
		Limit(p.Size).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, errors.WithMessage(err, "list follows")
	}
	return rows, total, nil
}

func (r *gormRepository) ListFollowing(ctx context.Context, userID uuid.UUID, search string, ascending bool, p pagination.Params) ([]UserRow, int64, error) {
	order := OrderDesc
	if ascending {
		order = OrderAsc
	}
	return r.list(ctx, "follower_id", "followed_id", userID, search, order, p)
}

func (r *gormRepository) ListFollowers(ctx context.Context, userID uuid.UUID, search string, p pagination.Params) ([]UserRow, int64, error) {
	return r.list(ctx, "followed_id", "follower_id", userID, search, OrderDesc, p)
}

func (r *gormRepository) among(ctx context.Context, fixedColumn, pickColumn string, fixed uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	found := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var picked []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Follow{}).
		Where(fixedColumn+" = ? AND "+pickColumn+" IN ?", fixed, ids).
		Pluck(pickColumn, &picked).Error
	if err != nil {
		return nil, errors.WithMessage(err, "lookup follows")
	}
	for _, id := range picked {
		found[id] = true
	}
	return found, nil
}

func (r *gormRepository) FollowedAmong(ctx context.Context, followerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.among(ctx, "follower_id", "followed_id", followerID, ids)
}

func (r *gormRepository) FollowersAmong(ctx context.Context, followedID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.among(ctx, "followed_id", "follower_id", followedID, ids)
}

func (r *gormRepository) FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, errors.WithMessage(err, "list following ids")
	}
	return ids, nil
}
