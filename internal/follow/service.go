package follow

import (
	"context"
	"fmt"

	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/consensuslabs/reelstream/backend/internal/user"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type service struct {
	repo     Repository
	activity ActivityRecorder
	media    MediaURLs
	validate *validator.Validate
	logger   logger.Logger
}

// NewService creates the social graph service. activity may be nil.
func NewService(repo Repository, activity ActivityRecorder, media MediaURLs, log logger.Logger) Service {
	return &service{
		repo:     repo,
		activity: activity,
		media:    media,
		validate: validator.New(),
		logger:   log,
	}
}

func (s *service) Toggle(ctx context.Context, followerID, followedID uuid.UUID) (*ToggleResult, error) {
	if followerID == followedID {
		return nil, ErrSelfFollow
	}

	exists, err := s.repo.UserExists(ctx, followedID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	following, err := s.repo.Exists(ctx, followerID, followedID)
	if err != nil {
		return nil, err
	}

	action := "follow"
	if following {
		err = s.repo.Delete(ctx, followerID, followedID)
		action = "unfollow"
	} else {
		err = s.repo.Create(ctx, &Follow{FollowerID: followerID, FollowedID: followedID})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", action, err)
	}

	followers, err := s.repo.CountFollowers(ctx, followedID)
	if err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.LogBehavior(ctx, followerID, action, "user", followedID, nil)
	}
	s.logger.LogInfo("Follow toggled", map[string]interface{}{
		"follower_id": followerID.String(),
		"followed_id": followedID.String(),
		"action":      action,
	})

	return &ToggleResult{Following: !following, FollowerCount: followers}, nil
}

func (s *service) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, followerID, followedID)
}

func (s *service) IsMutual(ctx context.Context, a, b uuid.UUID) (bool, error) {
	if a == b {
		return false, nil
	}
	ab, err := s.repo.Exists(ctx, a, b)
	if err != nil || !ab {
		return false, err
	}
	return s.repo.Exists(ctx, b, a)
}

func (s *service) Relationship(ctx context.Context, viewerID, targetID uuid.UUID) (*Relationship, error) {
	rel := &Relationship{}
	if viewerID == targetID {
		return rel, nil
	}

	var err error
	if rel.IsFollowing, err = s.repo.Exists(ctx, viewerID, targetID); err != nil {
		return nil, err
	}
	if rel.IsFollower, err = s.repo.Exists(ctx, targetID, viewerID); err != nil {
		return nil, err
	}
	rel.IsMutual = rel.IsFollowing && rel.IsFollower
	return rel, nil
}

func (s *service) FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountFollowers(ctx, userID)
}

func (s *service) FollowingCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountFollowing(ctx, userID)
}

func (s *service) checkList(ctx context.Context, userID uuid.UUID, req ListRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return apperrors.FromValidator(err)
	}
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return user.ErrUserNotFound
	}
	return nil
}

func rowIDs(rows []UserRow) []uuid.UUID {
	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids
}

func (s *service) resolveAvatars(rows []UserRow) {
	for i := range rows {
		key := rows[i].ProfilePicture
		if key == "" {
			key = user.DefaultAvatar
		}
		rows[i].ProfilePicture = s.media.URL(key)
	}
}

// ListFollowing lists the accounts userID follows. Every row is followed by userID;
// IsMutual reports whether the row user follows the viewer back.
func (s *service) ListFollowing(ctx context.Context, userID uuid.UUID, viewer *uuid.UUID, req ListRequest, p pagination.Params) (*pagination.Page[UserRow], error) {
	if err := s.checkList(ctx, userID, req); err != nil {
		return nil, err
	}

	rows, total, err := s.repo.ListFollowing(ctx, userID, req.Search, req.Order == OrderAsc, p)
	if err != nil {
		return nil, err
	}

	var followsViewer map[uuid.UUID]bool
	if viewer != nil && len(rows) > 0 {
		if followsViewer, err = s.repo.FollowersAmong(ctx, *viewer, rowIDs(rows)); err != nil {
			return nil, err
		}
	}
	for i := range rows {
		rows[i].IsFollowed = true
		rows[i].IsMutual = viewer != nil && rows[i].ID != *viewer && followsViewer[rows[i].ID]
	}

	s.resolveAvatars(rows)
	return pagination.NewPage(p, total, rows), nil
}

// ListFollowers lists the accounts following userID. IsFollowed reports whether
// the viewer follows the row user back, which also makes the pair mutual.
func (s *service) ListFollowers(ctx context.Context, userID uuid.UUID, viewer *uuid.UUID, req ListRequest, p pagination.Params) (*pagination.Page[UserRow], error) {
	if err := s.checkList(ctx, userID, req); err != nil {
		return nil, err
	}

	rows, total, err := s.repo.ListFollowers(ctx, userID, req.Search, p)
	if err != nil {
		return nil, err
	}

	var viewerFollows map[uuid.UUID]bool
	if viewer != nil && len(rows) > 0 {
		if viewerFollows, err = s.repo.FollowedAmong(ctx, *viewer, rowIDs(rows)); err != nil {
			return nil, err
		}
	}
	for i := range rows {
		followed := viewer != nil && rows[i].ID != *viewer && viewerFollows[rows[i].ID]
		rows[i].IsFollowed = followed
		rows[i].IsMutual = followed
	}

	s.resolveAvatars(rows)
	return pagination.NewPage(p, total, rows), nil
}

func (s *service) FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.FollowingIDs(ctx, userID)
}
