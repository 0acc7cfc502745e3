package analytics

import (
	"context"
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/google/uuid"
)

// DefaultBestEffortTimeout bounds each secondary write
const DefaultBestEffortTimeout = 3 * time.Second

// Recorder performs secondary analytics writes after a primary operation has
// committed. Failures are logged at warn level and never returned.
type Recorder struct {
	repo    Repository
	logger  logger.Logger
	timeout time.Duration
}

// NewRecorder creates a Recorder. A nil repo turns every write into a no-op.
func NewRecorder(repo Repository, log logger.Logger) *Recorder {
	return &Recorder{repo: repo, logger: log, timeout: DefaultBestEffortTimeout}
}

// BestEffort runs fn detached from the caller's cancellation with its own
// timeout and reports whether it succeeded
func (r *Recorder) BestEffort(ctx context.Context, op string, fn func(ctx context.Context) error) bool {
	if r == nil || r.repo == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		r.logger.LogWarn("Best-effort analytics write failed", map[string]interface{}{
			"operation": op,
			"error":     err.Error(),
		})
		return false
	}
	return true
}

// LogBehavior records a user action
func (r *Recorder) LogBehavior(ctx context.Context, userID uuid.UUID, action, targetType string, targetID uuid.UUID, metadata map[string]interface{}) {
	r.BestEffort(ctx, "log_behavior", func(ctx context.Context) error {
		return r.repo.InsertBehavior(ctx, &Behavior{
			UserID:     userID.String(),
			Action:     action,
			TargetType: targetType,
			TargetID:   targetID.String(),
			Metadata:   metadata,
		})
	})
}

// UpdateVideoStats overwrites counters on a video's analytics document
func (r *Recorder) UpdateVideoStats(ctx context.Context, videoID uuid.UUID, fields map[string]interface{}) {
	r.BestEffort(ctx, "update_video_stats", func(ctx context.Context) error {
		return r.repo.UpsertVideoStats(ctx, videoID, fields)
	})
}

// CountView bumps a video's analytics view counter
func (r *Recorder) CountView(ctx context.Context, videoID uuid.UUID) {
	r.BestEffort(ctx, "count_view", func(ctx context.Context) error {
		return r.repo.IncrementViews(ctx, videoID)
	})
}
