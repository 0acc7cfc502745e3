package video

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/consensuslabs/reelstream/backend/internal/storage"
	"github.com/consensuslabs/reelstream/backend/internal/user"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Deps groups the collaborators of the video service
type Deps struct {
	Repo       Repository
	Store      storage.StorageService
	Prober     Prober
	Stager     Stager
	Social     SocialGraph
	Engagement Engagement
	Watched    HistoryReader
	Activity   ActivityRecorder
	Logger     logger.Logger
}

type service struct {
	Deps
	config   Config
	validate *validator.Validate
}

// NewService creates the video service
func NewService(deps Deps, config Config) Service {
	if config.MaxVideoMB <= 0 {
		config.MaxVideoMB = 100
	}
	if config.MaxImageMB <= 0 {
		config.MaxImageMB = 5
	}
	return &service{Deps: deps, config: config, validate: validator.New()}
}

func (s *service) toItem(row Row) Item {
	avatar := row.UploaderAvatar
	if avatar == "" {
		avatar = user.DefaultAvatar
	}
	return Item{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		URL:          s.Store.URL(row.FilePath),
		CoverURL:     s.Store.URL(row.CoverPath),
		Duration:     row.Duration,
		IsPublic:     row.IsPublic,
		ViewCount:    row.ViewCount,
		LikeCount:    row.LikeCount,
		CollectCount: row.CollectCount,
		CommentCount: row.CommentCount,
		CreatedAt:    row.CreatedAt,
		Uploader: Uploader{
			ID:             row.UploaderID,
			UniqueID:       row.UploaderHandle,
			Username:       row.UploaderName,
			ProfilePicture: s.Store.URL(avatar),
		},
	}
}

func (s *service) toPage(rows []Row, total int64, p pagination.Params) *pagination.Page[Item] {
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, s.toItem(row))
	}
	return pagination.NewPage(p, total, items)
}

func (s *service) list(ctx context.Context, q ListQuery, p pagination.Params) (*pagination.Page[Item], error) {
	rows, total, err := s.Repo.List(ctx, q, p)
	if err != nil {
		return nil, err
	}
	return s.toPage(rows, total, p), nil
}

// Feed lists public videos in the given order; unknown orders fall back to latest
func (s *service) Feed(ctx context.Context, order string, p pagination.Params) (*pagination.Page[Item], error) {
	switch order {
	case OrderHot, OrderRecommended:
	default:
		order = OrderLatest
	}
	return s.list(ctx, ListQuery{Order: order}, p)
}

// Following lists public videos by the viewer's followees, newest first
func (s *service) Following(ctx context.Context, viewer uuid.UUID, p pagination.Params) (*pagination.Page[Item], error) {
	ids, err := s.Social.FollowingIDs(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("failed to load following: %w", err)
	}
	if len(ids) == 0 {
		return pagination.Empty[Item](p), nil
	}
	return s.list(ctx, ListQuery{Order: OrderLatest, UploaderIDs: ids}, p)
}

func (s *service) Mine(ctx context.Context, uploaderID uuid.UUID, p pagination.Params) (*pagination.Page[Item], error) {
	return s.list(ctx, ListQuery{Order: OrderLatest, UploaderIDs: []uuid.UUID{uploaderID}, IncludePrivate: true}, p)
}

func (s *service) Liked(ctx context.Context, userID uuid.UUID, p pagination.Params) (*pagination.Page[Item], error) {
	rows, total, err := s.Repo.ListLiked(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	return s.toPage(rows, total, p), nil
}

func (s *service) Collected(ctx context.Context, userID uuid.UUID, p pagination.Params) (*pagination.Page[Item], error) {
	rows, total, err := s.Repo.ListCollected(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	return s.toPage(rows, total, p), nil
}

// History returns recently watched videos in watch order. Deleted videos are skipped.
func (s *service) History(ctx context.Context, userID uuid.UUID, limit int) ([]Item, error) {
	if limit <= 0 || limit > pagination.MaxSize {
		limit = DefaultHistoryLimit
	}
	ids, err := s.Watched.RecentViews(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load watch history: %w", err)
	}
	items := make([]Item, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	rows, err := s.Repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]Row, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			items = append(items, s.toItem(row))
		}
	}
	return items, nil
}

func (s *service) Detail(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*Detail, error) {
	row, err := s.Repo.GetRow(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewer != nil {
		if err := s.Repo.IncrementViews(ctx, id); err != nil {
			return nil, err
		}
		row.ViewCount++
	}

	detail := &Detail{Item: s.toItem(*row)}
	if detail.UploaderFollowerCount, err = s.Social.FollowerCount(ctx, row.UploaderID); err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}

	status, err := s.Engagement.GetStatus(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	detail.LikeCount = status.LikeCount
	detail.CollectCount = status.CollectCount
	detail.IsLiked = status.IsLiked
	detail.IsCollected = status.IsCollected

	if viewer != nil && *viewer != row.UploaderID {
		rel := &Relationship{}
		if rel.IsFollowed, err = s.Social.IsFollowing(ctx, *viewer, row.UploaderID); err != nil {
			return nil, err
		}
		if rel.IsFollower, err = s.Social.IsFollowing(ctx, row.UploaderID, *viewer); err != nil {
			return nil, err
		}
		rel.IsMutual = rel.IsFollowed && rel.IsFollower
		detail.Relationship = rel
	}

	if viewer != nil && s.Activity != nil {
		s.Activity.LogBehavior(ctx, *viewer, "view", "video", id, nil)
		s.Activity.CountView(ctx, id)
	}
	return detail, nil
}

// Upload probes the video from a staged copy, stores both files and writes one metadata row.
// Stored objects are removed again when a later step fails.
func (s *service) Upload(ctx context.Context, uploaderID uuid.UUID, in UploadInput) (*UploadResult, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.validate.Struct(in.UploadRequest); err != nil {
		return nil, apperrors.FromValidator(err)
	}
	if err := storage.Validate(in.Video, storage.VideoRule(s.config.MaxVideoMB)); err != nil {
		return nil, err
	}
	if err := storage.Validate(in.Cover, storage.ImageRule("cover", s.config.MaxImageMB)); err != nil {
		return nil, err
	}

	videoExt := strings.ToLower(filepath.Ext(in.Video.Filename))
	src, err := in.Video.Open()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read video", err)
	}
	staged, release, err := s.Stager.Stage(src, videoExt)
	src.Close()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to stage video", err)
	}
	defer release()

	seconds, err := s.Prober.Duration(ctx, staged)
	if err != nil {
		return nil, apperrors.NewProcessingError("failed to read video duration", err)
	}

	videoKey := storage.NewKey(storage.DirVideos, "video", uploaderID, videoExt)
	if _, err := s.Store.UploadFile(ctx, staged, videoKey); err != nil {
		return nil, apperrors.NewStorageError("failed to store video", err)
	}

	coverKey := storage.NewKey(storage.DirCovers, "cover", uploaderID, filepath.Ext(in.Cover.Filename))
	if err := s.storeCover(ctx, in, coverKey); err != nil {
		s.removeObjects(ctx, videoKey)
		return nil, err
	}

	v := &Video{
		UploaderID:  uploaderID,
		Title:       in.Title,
		Description: in.Description,
		FilePath:    videoKey,
		CoverPath:   coverKey,
		Duration:    int(seconds),
		IsPublic:    true,
	}
	if err := s.Repo.Create(ctx, v); err != nil {
		s.removeObjects(ctx, videoKey, coverKey)
		return nil, err
	}

	s.Logger.LogInfo("Video uploaded", map[string]interface{}{
		"video_id":    v.ID.String(),
		"uploader_id": uploaderID.String(),
		"duration":    v.Duration,
		"size":        in.Video.Size,
	})

	item := s.toItem(Row{Video: *v})
	item.Uploader = Uploader{ID: uploaderID}
	return &UploadResult{Video: &item, URL: item.URL}, nil
}

func (s *service) storeCover(ctx context.Context, in UploadInput, key string) error {
	src, err := in.Cover.Open()
	if err != nil {
		return apperrors.NewStorageError("failed to read cover", err)
	}
	defer src.Close()

	if _, err := s.Store.UploadFileStream(ctx, src, in.Cover.Size, key, storage.ContentType(in.Cover)); err != nil {
		return apperrors.NewStorageError("failed to store cover", err)
	}
	return nil
}

func (s *service) removeObjects(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.Store.DeleteFile(ctx, key); err != nil {
			s.Logger.LogWarn("Failed to remove orphaned upload", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
}

// Delete soft-deletes a video. Likes, collections and comments are kept.
func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) (*DeleteResult, error) {
	row, err := s.Repo.GetRow(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.UploaderID != userID {
		return nil, ErrNotVideoOwner
	}
	if err := s.Repo.SoftDelete(ctx, id); err != nil {
		return nil, err
	}

	if s.Activity != nil {
		s.Activity.LogBehavior(ctx, userID, "delete", "video", id, nil)
	}
	s.Logger.LogInfo("Video deleted", map[string]interface{}{
		"video_id": id.String(),
		"user_id":  userID.String(),
	})
	return &DeleteResult{ID: id, Deleted: true}, nil
}
