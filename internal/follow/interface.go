package follow

import (
	"context"

	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/google/uuid"
)

// Repository persists follow edges
type Repository interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	Create(ctx context.Context, f *Follow) error
	Delete(ctx context.Context, followerID, followedID uuid.UUID) error
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
	ListFollowing(ctx context.Context, userID uuid.UUID, search string, ascending bool, p pagination.Params) ([]UserRow, int64, error)
	ListFollowers(ctx context.Context, userID uuid.UUID, search string, p pagination.Params) ([]UserRow, int64, error)
	// FollowedAmong returns the subset of ids that followerID follows
	FollowedAmong(ctx context.Context, followerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	// FollowersAmong returns the subset of ids that follow followedID
	FollowersAmong(ctx context.Context, followedID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Service is the social graph
type Service interface {
	Toggle(ctx context.Context, followerID, followedID uuid.UUID) (*ToggleResult, error)
	IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	IsMutual(ctx context.Context, a, b uuid.UUID) (bool, error)
	Relationship(ctx context.Context, viewerID, targetID uuid.UUID) (*Relationship, error)
	FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error)
	FollowingCount(ctx context.Context, userID uuid.UUID) (int64, error)
	ListFollowing(ctx context.Context, userID uuid.UUID, viewer *uuid.UUID, req ListRequest, p pagination.Params) (*pagination.Page[UserRow], error)
	ListFollowers(ctx context.Context, userID uuid.UUID, viewer *uuid.UUID, req ListRequest, p pagination.Params) (*pagination.Page[UserRow], error)
	FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// ActivityRecorder receives best-effort behavior events
type ActivityRecorder interface {
	LogBehavior(ctx context.Context, userID uuid.UUID, action, targetType string, targetID uuid.UUID, metadata map[string]interface{})
}

// MediaURLs resolves stored media keys to public URLs
type MediaURLs interface {
	URL(key string) string
}
