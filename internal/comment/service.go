package comment

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/consensuslabs/reelstream/backend/internal/user"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// serviceImpl implements the Service interface
type serviceImpl struct {
	repo     Repository
	activity ActivityRecorder
	media    MediaURLs
	validate *validator.Validate
	logger   logger.Logger
}

// NewService creates a new comment service. activity may be nil.
func NewService(repo Repository, activity ActivityRecorder, media MediaURLs, log logger.Logger) Service {
	return &serviceImpl{
		repo:     repo,
		activity: activity,
		media:    media,
		validate: validator.New(),
		logger:   log,
	}
}

// liveVideo returns the video unless it is missing or soft-deleted
func (s *serviceImpl) liveVideo(ctx context.Context, videoID uuid.UUID) (*VideoRef, error) {
	video, err := s.repo.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.IsDeleted {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

// CreateComment posts a root comment or a reply and resyncs the video's comment count
func (s *serviceImpl) CreateComment(ctx context.Context, videoID, userID uuid.UUID, req CreateRequest) (*View, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.FromValidator(err)
	}

	c := &Comment{
		VideoID:  videoID,
		UserID:   userID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}

	var commentCount int64
	err := s.repo.Transaction(ctx, func(repo Repository) error {
		video, err := repo.LockVideo(ctx, videoID)
		if err != nil {
			return err
		}
		if video.IsDeleted {
			return ErrVideoNotFound
		}
		if c.ParentID != nil {
			parent, err := repo.GetByID(ctx, *c.ParentID)
			if errors.Is(err, ErrCommentNotFound) {
				return ErrInvalidParent
			}
			if err != nil {
				return err
			}
			if parent.VideoID != videoID {
				return ErrInvalidParent
			}
		}
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
		commentCount, err = repo.RecountVideoComments(ctx, videoID)
		return err
	})
	if err != nil {
		return nil, err
	}

	view := newView(c)
	s.attachAuthors(ctx, []*View{&view})

	if s.activity != nil {
		s.activity.LogBehavior(ctx, userID, "comment", "video", videoID, map[string]interface{}{
			"comment_id": c.ID.String(),
		})
		s.activity.UpdateVideoStats(ctx, videoID, map[string]interface{}{"comment_count": commentCount})
	}
	return &view, nil
}

// attachAuthors fills in author summaries. A failed lookup leaves them empty.
func (s *serviceImpl) attachAuthors(ctx context.Context, views []*View) {
	if len(views) == 0 {
		return
	}
	seen := make(map[uuid.UUID]bool, len(views))
	ids := make([]uuid.UUID, 0, len(views))
	for _, v := range views {
		if !seen[v.UserID] {
			seen[v.UserID] = true
			ids = append(ids, v.UserID)
		}
	}

	authors, err := s.repo.Authors(ctx, ids)
	if err != nil {
		s.logger.LogWarn("Failed to load comment authors", map[string]interface{}{"error": err.Error()})
		return
	}
	for _, v := range views {
		a, ok := authors[v.UserID]
		if !ok {
			continue
		}
		if a.ProfilePicture == "" {
			a.ProfilePicture = user.DefaultAvatar
		}
		a.ProfilePicture = s.media.URL(a.ProfilePicture)
		v.Author = &a
	}
}

// ListComments returns one page of comments under a single parent with their reply counts
func (s *serviceImpl) ListComments(ctx context.Context, videoID uuid.UUID, req ListRequest, p pagination.Params) (*pagination.Page[View], error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.FromValidator(err)
	}
	if _, err := s.liveVideo(ctx, videoID); err != nil {
		return nil, err
	}

	comments, total, err := s.repo.List(ctx, videoID, req.ParentID, req.Order, p)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return pagination.NewPage[View](p, total, nil), nil
	}

	edges, err := s.repo.Edges(ctx, videoID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}
	replies := CountDescendants(edges, ids)

	views := make([]View, len(comments))
	ptrs := make([]*View, len(comments))
	for i := range comments {
		views[i] = newView(&comments[i])
		views[i].ReplyCount = replies[comments[i].ID]
		ptrs[i] = &views[i]
	}
	s.attachAuthors(ctx, ptrs)

	return pagination.NewPage(p, total, views), nil
}

// GetCommentTree returns every comment of a video as a forest
func (s *serviceImpl) GetCommentTree(ctx context.Context, videoID uuid.UUID) ([]*Node, error) {
	if _, err := s.liveVideo(ctx, videoID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	views := make([]View, len(comments))
	ptrs := make([]*View, len(comments))
	for i := range comments {
		views[i] = newView(&comments[i])
		ptrs[i] = &views[i]
	}
	s.attachAuthors(ctx, ptrs)

	return BuildForest(views), nil
}

// DeleteComment removes a comment, all of its replies and all of their interactions
func (s *serviceImpl) DeleteComment(ctx context.Context, commentID, userID uuid.UUID) (*DeleteResult, error) {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	video, err := s.repo.GetVideo(ctx, c.VideoID)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID && video.UploaderID != userID {
		return nil, ErrNotCommentOwner
	}

	var removed []uuid.UUID
	var commentCount int64
	err = s.repo.Transaction(ctx, func(repo Repository) error {
		if _, err := repo.LockVideo(ctx, c.VideoID); err != nil {
			return err
		}
		// a concurrent delete may already have removed it
		if _, err := repo.LockComment(ctx, commentID); err != nil {
			return err
		}
		edges, err := repo.Edges(ctx, c.VideoID)
		if err != nil {
			return err
		}
		removed = CollectSubtree(edges, commentID)
		if err := repo.DeleteCascade(ctx, removed); err != nil {
			return err
		}
		commentCount, err = repo.RecountVideoComments(ctx, c.VideoID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogInfo("Comment deleted", map[string]interface{}{
		"comment_id": commentID.String(),
		"video_id":   c.VideoID.String(),
		"removed":    len(removed),
	})
	if s.activity != nil {
		s.activity.UpdateVideoStats(ctx, c.VideoID, map[string]interface{}{"comment_count": commentCount})
	}
	return &DeleteResult{Deleted: len(removed)}, nil
}

// ToggleReaction applies a like (like=true) or dislike and resyncs the comment counters.
// Repeating the current reaction removes it; the opposite reaction flips it.
func (s *serviceImpl) ToggleReaction(ctx context.Context, commentID, userID uuid.UUID, like bool) (*ReactionResult, error) {
	result := &ReactionResult{CommentID: commentID}
	err := s.repo.Transaction(ctx, func(repo Repository) error {
		if _, err := repo.LockComment(ctx, commentID); err != nil {
			return err
		}
		current, err := repo.GetInteraction(ctx, userID, commentID)
		if err != nil {
			return err
		}

		switch {
		case current == nil:
			err = repo.CreateInteraction(ctx, &Interaction{UserID: userID, CommentID: commentID, IsLike: like})
			result.Reaction = reactionOf(&Interaction{IsLike: like})
		case current.IsLike == like:
			err = repo.DeleteInteraction(ctx, current.ID)
			result.Reaction = ReactionNone
		default:
			err = repo.UpdateInteraction(ctx, current.ID, like)
			result.Reaction = reactionOf(&Interaction{IsLike: like})
		}
		if err != nil {
			return err
		}

		result.LikeCount, result.DislikeCount, err = repo.RecountReactions(ctx, commentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetReaction returns the caller's current reaction on a comment
func (s *serviceImpl) GetReaction(ctx context.Context, commentID, userID uuid.UUID) (Reaction, error) {
	if _, err := s.repo.GetByID(ctx, commentID); err != nil {
		return ReactionNone, err
	}
	current, err := s.repo.GetInteraction(ctx, userID, commentID)
	if err != nil {
		return ReactionNone, err
	}
	return reactionOf(current), nil
}
