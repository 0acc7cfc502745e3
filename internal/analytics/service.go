package analytics

import (
	"context"
	"time"

	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type service struct {
	repo     Repository
	history  HistoryRepository
	videos   VideoChecker
	validate *validator.Validate
	logger   logger.Logger
	now      func() time.Time
}

// NewService creates the analytics service
func NewService(repo Repository, history HistoryRepository, videos VideoChecker, log logger.Logger) Service {
	return &service{
		repo:     repo,
		history:  history,
		videos:   videos,
		validate: validator.New(),
		logger:   log,
		now:      time.Now,
	}
}

// LogView stores the playback report and replaces the user's watch history entry for the video
func (s *service) LogView(ctx context.Context, userID, videoID uuid.UUID, req ViewRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return apperrors.FromValidator(err)
	}

	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrVideoNotFound
	}

	now := s.now()
	if err := s.repo.InsertView(ctx, &View{
		UserID:        userID.String(),
		VideoID:       videoID.String(),
		WatchDuration: req.WatchDuration,
		WatchProgress: req.WatchProgress,
		DeviceInfo:    req.DeviceInfo,
		Timestamp:     now,
	}); err != nil {
		return err
	}

	return s.history.Upsert(ctx, &WatchHistory{
		UserID:       userID,
		VideoID:      videoID,
		WatchSeconds: req.WatchDuration,
		LastWatchAt:  now,
	})
}

func (s *service) GetVideoAnalytics(ctx context.Context, videoID uuid.UUID) (*VideoAnalytics, error) {
	return s.repo.GetVideoAnalytics(ctx, videoID)
}

// PopularVideos ranks videos by views within the last req.Days days
func (s *service) PopularVideos(ctx context.Context, req PopularRequest) ([]PopularVideo, error) {
	req = req.normalize()
	since := s.now().AddDate(0, 0, -req.Days)
	return s.repo.Popular(ctx, since, req.Limit)
}

// RecentViews returns the ids of the videos a user watched most recently
func (s *service) RecentViews(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.repo.RecentVideoIDs(ctx, userID, limit)
}
