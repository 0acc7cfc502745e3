package user

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
)

// Repository persists users
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Service handles profile operations for authenticated users
type Service interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*Profile, error)
	ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error
	UploadAvatar(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (*AvatarResponse, error)
}

// VideoCounter counts a user's non-deleted uploads
type VideoCounter interface {
	CountByUploader(ctx context.Context, uploaderID uuid.UUID) (int64, error)
}

// FollowCounter reports the size of a user's social graph
type FollowCounter interface {
	FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error)
	FollowingCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

// HandleGenerator issues public user handles
type HandleGenerator interface {
	Next() string
}
