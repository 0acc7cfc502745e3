package user

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a user's public data with social and upload statistics
type Profile struct {
	ID             uuid.UUID  `json:"id"`
	UniqueID       string     `json:"uniqueId"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FullName       string     `json:"fullName"`
	Bio            string     `json:"bio"`
	Gender         Gender     `json:"gender"`
	ProfilePicture string     `json:"profilePicture"`
	IsVerified     bool       `json:"isVerified"`
	Level          int        `json:"level"`
	VIPLevel       int        `json:"vipLevel"`
	VIPExpireAt    *time.Time `json:"vipExpireAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`

	VideoCount     int64 `json:"videoCount"`
	FollowingCount int64 `json:"followingCount"`
	FollowerCount  int64 `json:"followerCount"`
}

// UpdateProfileRequest is a partial update; nil fields are left unchanged
type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	FullName *string `json:"fullName" validate:"omitempty,max=200"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Gender   *Gender `json:"gender" validate:"omitempty,oneof=male female other unknown"`
}

// ChangePasswordRequest represents the change password payload
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=32"`
}

// AvatarResponse carries the new avatar location
type AvatarResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}
