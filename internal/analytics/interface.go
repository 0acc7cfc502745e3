package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the document store behind behavior logs, views and counters
type Repository interface {
	EnsureIndexes(ctx context.Context) error
	InsertBehavior(ctx context.Context, b *Behavior) error
	InsertView(ctx context.Context, v *View) error
	UpsertVideoStats(ctx context.Context, videoID uuid.UUID, fields map[string]interface{}) error
	IncrementViews(ctx context.Context, videoID uuid.UUID) error
	GetVideoAnalytics(ctx context.Context, videoID uuid.UUID) (*VideoAnalytics, error)
	RecentVideoIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error)
	Popular(ctx context.Context, since time.Time, limit int) ([]PopularVideo, error)
}

// HistoryRepository stores the relational watch history
type HistoryRepository interface {
	Upsert(ctx context.Context, h *WatchHistory) error
}

// VideoChecker reports whether a video is live (exists and is not soft-deleted)
type VideoChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service exposes view reporting and read-side analytics
type Service interface {
	LogView(ctx context.Context, userID, videoID uuid.UUID, req ViewRequest) error
	GetVideoAnalytics(ctx context.Context, videoID uuid.UUID) (*VideoAnalytics, error)
	PopularVideos(ctx context.Context, req PopularRequest) ([]PopularVideo, error)
	RecentViews(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error)
}
