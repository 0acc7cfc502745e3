package interaction

import (
	"context"

	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/google/uuid"
)

type service struct {
	repo     Repository
	activity ActivityRecorder
	logger   logger.Logger
}

// NewService creates the like/collection service. activity may be nil.
func NewService(repo Repository, activity ActivityRecorder, log logger.Logger) Service {
	return &service{repo: repo, activity: activity, logger: log}
}

func (s *service) ToggleLike(ctx context.Context, userID, videoID uuid.UUID) (*ToggleResult, error) {
	return s.toggle(ctx, KindLike, userID, videoID)
}

func (s *service) ToggleCollect(ctx context.Context, userID, videoID uuid.UUID) (*ToggleResult, error) {
	return s.toggle(ctx, KindCollect, userID, videoID)
}

// toggle flips the relation and overwrites the video counter with a full recount,
// all inside one transaction
func (s *service) toggle(ctx context.Context, kind Kind, userID, videoID uuid.UUID) (*ToggleResult, error) {
	result := &ToggleResult{}
	err := s.repo.Transaction(ctx, func(repo Repository) error {
		exists, err := repo.LockVideo(ctx, videoID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrVideoNotFound
		}

		active, err := repo.Exists(ctx, kind, userID, videoID)
		if err != nil {
			return err
		}
		if active {
			err = repo.Remove(ctx, kind, userID, videoID)
		} else {
			err = repo.Add(ctx, kind, userID, videoID)
		}
		if err != nil {
			return err
		}
		result.Active = !active

		if result.Count, err = repo.Count(ctx, kind, videoID); err != nil {
			return err
		}
		return repo.SetCounter(ctx, kind, videoID, result.Count)
	})
	if err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.LogBehavior(ctx, userID, kind.Action(result.Active), "video", videoID, nil)
		s.activity.UpdateVideoStats(ctx, videoID, map[string]interface{}{kind.CounterColumn(): result.Count})
	}
	s.logger.LogDebug("Interaction toggled", map[string]interface{}{
		"kind":     kind.String(),
		"user_id":  userID.String(),
		"video_id": videoID.String(),
		"active":   result.Active,
	})
	return result, nil
}

// GetStatus reports the viewer's like and collect flags and the current counts.
// A nil viewer gets both flags false.
func (s *service) GetStatus(ctx context.Context, viewer *uuid.UUID, videoID uuid.UUID) (*Status, error) {
	exists, err := s.repo.VideoExists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrVideoNotFound
	}

	status := &Status{}
	if status.LikeCount, err = s.repo.Count(ctx, KindLike, videoID); err != nil {
		return nil, err
	}
	if status.CollectCount, err = s.repo.Count(ctx, KindCollect, videoID); err != nil {
		return nil, err
	}
	if viewer == nil {
		return status, nil
	}
	if status.IsLiked, err = s.repo.Exists(ctx, KindLike, *viewer, videoID); err != nil {
		return nil, err
	}
	if status.IsCollected, err = s.repo.Exists(ctx, KindCollect, *viewer, videoID); err != nil {
		return nil, err
	}
	return status, nil
}
