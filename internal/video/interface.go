package video

import (
	"context"
	"io"

	"github.com/consensuslabs/reelstream/backend/internal/interaction"
	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/google/uuid"
)

// Repository persists videos
type Repository interface {
	Create(ctx context.Context, v *Video) error
	// GetRow returns a live video with its uploader; ErrVideoNotFound when missing or deleted
	GetRow(ctx context.Context, id uuid.UUID) (*Row, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, q ListQuery, p pagination.Params) ([]Row, int64, error)
	ListLiked(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]Row, int64, error)
	ListCollected(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]Row, int64, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Row, error)
	CountByUploader(ctx context.Context, uploaderID uuid.UUID) (int64, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Service handles feeds, uploads and video pages
type Service interface {
	Feed(ctx context.Context, order string, p pagination.Params) (*pagination.Page[Item], error)
	Following(ctx context.Context, viewer uuid.UUID, p pagination.Params) (*pagination.Page[Item], error)
	Mine(ctx context.Context, uploaderID uuid.UUID, p pagination.Params) (*pagination.Page[Item], error)
	Liked(ctx context.Context, userID uuid.UUID, p pagination.Params) (*pagination.Page[Item], error)
	Collected(ctx context.Context, userID uuid.UUID, p pagination.Params) (*pagination.Page[Item], error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]Item, error)
	Detail(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*Detail, error)
	Upload(ctx context.Context, uploaderID uuid.UUID, in UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (*DeleteResult, error)
}

// Prober reads the duration of a media file in seconds
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Stager copies an upload to local disk so it can be probed
type Stager interface {
	Stage(r io.Reader, ext string) (path string, release func(), err error)
}

// SocialGraph answers follow questions about the uploader
type SocialGraph interface {
	IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error)
	FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Engagement reports like and collect state of a video
type Engagement interface {
	GetStatus(ctx context.Context, viewer *uuid.UUID, videoID uuid.UUID) (*interaction.Status, error)
}

// HistoryReader lists the videos a user watched, most recent first
type HistoryReader interface {
	RecentViews(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error)
}

// ActivityRecorder receives best-effort analytics
type ActivityRecorder interface {
	LogBehavior(ctx context.Context, userID uuid.UUID, action, targetType string, targetID uuid.UUID, metadata map[string]interface{})
	CountView(ctx context.Context, videoID uuid.UUID)
}
