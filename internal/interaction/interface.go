package interaction

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists likes and collections
type Repository interface {
	// Transaction runs fn against a repository bound to one database transaction
	Transaction(ctx context.Context, fn func(repo Repository) error) error

	// VideoExists reports whether the video exists and is not soft-deleted
	VideoExists(ctx context.Context, videoID uuid.UUID) (bool, error)
	// LockVideo is VideoExists that also locks the video row until the transaction ends
	LockVideo(ctx context.Context, videoID uuid.UUID) (bool, error)
	Exists(ctx context.Context, kind Kind, userID, videoID uuid.UUID) (bool, error)
	Add(ctx context.Context, kind Kind, userID, videoID uuid.UUID) error
	Remove(ctx context.Context, kind Kind, userID, videoID uuid.UUID) error
	Count(ctx context.Context, kind Kind, videoID uuid.UUID) (int64, error)
	SetCounter(ctx context.Context, kind Kind, videoID uuid.UUID, value int64) error
}

// Service toggles likes and collections
type Service interface {
	ToggleLike(ctx context.Context, userID, videoID uuid.UUID) (*ToggleResult, error)
	ToggleCollect(ctx context.Context, userID, videoID uuid.UUID) (*ToggleResult, error)
	GetStatus(ctx context.Context, viewer *uuid.UUID, videoID uuid.UUID) (*Status, error)
}

// ActivityRecorder receives best-effort analytics after a committed toggle
type ActivityRecorder interface {
	LogBehavior(ctx context.Context, userID uuid.UUID, action, targetType string, targetID uuid.UUID, metadata map[string]interface{})
	UpdateVideoStats(ctx context.Context, videoID uuid.UUID, fields map[string]interface{})
}
