package follow

import (
	"time"

	"github.com/google/uuid"
)

// Order values accepted by the following list
const (
	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// ListRequest filters a following or follower listing
type ListRequest struct {
	Search string `form:"search" validate:"max=50"`
	Order  string `form:"order" validate:"omitempty,oneof=asc desc"`
}

// UserRow is one account in a following or follower listing
type UserRow struct {
	ID             uuid.UUID `json:"id"`
	Handle         string    `json:"handle"`
	Username       string    `json:"username"`
	FullName       string    `json:"fullName"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profilePicture"`
	FollowedAt     time.Time `json:"followedAt"`
	IsFollowed     bool      `json:"isFollowed"`
	IsMutual       bool      `json:"isMutual"`
}

// Relationship describes the edges between a viewer and a target user
type Relationship struct {
	IsFollowing bool `json:"isFollowing"`
	IsFollower  bool `json:"isFollower"`
	IsMutual    bool `json:"isMutual"`
}

// ToggleResult is the state after a follow toggle
type ToggleResult struct {
	Following     bool  `json:"following"`
	FollowerCount int64 `json:"followerCount"`
}
