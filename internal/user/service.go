package user

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/consensuslabs/reelstream/backend/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type service struct {
	repo       Repository
	videos     VideoCounter
	follows    FollowCounter
	store      storage.StorageService
	validate   *validator.Validate
	maxImageMB int64
	logger     logger.Logger
}

// NewService creates the profile service
func NewService(repo Repository, videos VideoCounter, follows FollowCounter, store storage.StorageService, maxImageMB int64, log logger.Logger) Service {
	return &service{
		repo:       repo,
		videos:     videos,
		follows:    follows,
		store:      store,
		validate:   validator.New(),
		maxImageMB: maxImageMB,
		logger:     log,
	}
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	videoCount, err := s.videos.CountByUploader(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}
	followingCount, err := s.follows.FollowingCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}
	followerCount, err := s.follows.FollowerCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}

	return &Profile{
		ID:             u.ID,
		UniqueID:       u.Handle,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		Bio:            u.Bio,
		Gender:         u.Gender,
		ProfilePicture: s.store.URL(u.Avatar()),
		IsVerified:     u.IsVerified,
		Level:          u.Level,
		VIPLevel:       u.VIPLevel,
		VIPExpireAt:    u.VIPExpireAt,
		CreatedAt:      u.CreatedAt,
		VideoCount:     videoCount,
		FollowingCount: followingCount,
		FollowerCount:  followerCount,
	}, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*Profile, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.FromValidator(err)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Username != nil && *req.Username != current.Username {
		if err := ValidateUsername(*req.Username); err != nil {
			return nil, err
		}
		taken, err := s.repo.ExistsByUsername(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		fields["username"] = *req.Username
	}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}

	if len(fields) > 0 {
		if err := s.repo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.GetProfile(ctx, id)
}

func (s *service) ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return apperrors.FromValidator(err)
	}
	if err := ValidatePassword("newPassword", req.NewPassword); err != nil {
		return err
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CheckPassword(u.Password, req.OldPassword) {
		return ErrWrongOldPassword
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.Update(ctx, id, map[string]interface{}{
		"password":            hash,
		"password_updated_at": time.Now(),
	}); err != nil {
		return err
	}

	s.logger.LogInfo("Password changed", map[string]interface{}{"user_id": id.String()})
	return nil
}

func (s *service) UploadAvatar(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (*AvatarResponse, error) {
	if err := storage.Validate(file, storage.ImageRule("avatar", s.maxImageMB)); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read avatar", err)
	}
	defer src.Close()

	key := storage.NewKey(storage.DirAvatars, "user", id, ".jpg")
	if _, err := s.store.UploadFileStream(ctx, src, file.Size, key, storage.ContentType(file)); err != nil {
		return nil, apperrors.NewStorageError("failed to store avatar", err)
	}

	if err := s.repo.Update(ctx, id, map[string]interface{}{"profile_picture": key}); err != nil {
		if delErr := s.store.DeleteFile(ctx, key); delErr != nil {
			s.logger.LogWarn("Failed to remove orphaned avatar", map[string]interface{}{
				"key":   key,
				"error": delErr.Error(),
			})
		}
		return nil, err
	}

	if old := u.ProfilePicture; old != "" && old != DefaultAvatar {
		if err := s.store.DeleteFile(ctx, old); err != nil {
			s.logger.LogWarn("Failed to remove previous avatar", map[string]interface{}{
				"key":   old,
				"error": err.Error(),
			})
		}
	}

	return &AvatarResponse{Path: key, URL: s.store.URL(key)}, nil
}
