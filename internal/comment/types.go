package comment

import (
	"time"

	"github.com/google/uuid"
)

// Listing orders
const (
	OrderLatest  = "latest"
	OrderHottest = "hottest"
)

// CreateRequest is the payload for posting a comment or reply
type CreateRequest struct {
	Content  string     `json:"content" validate:"required,max=2000"`
	ParentID *uuid.UUID `json:"parentId"`
}

// ListRequest filters a flat comment listing. A nil ParentID lists root comments.
type ListRequest struct {
	ParentID *uuid.UUID
	Order    string `validate:"omitempty,oneof=latest hottest"`
}

// Author is the public summary of a comment's author
type Author struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	ProfilePicture string    `json:"profilePicture"`
}

// View is a comment as returned to clients
type View struct {
	ID           uuid.UUID  `json:"id"`
	VideoID      uuid.UUID  `json:"videoId"`
	UserID       uuid.UUID  `json:"userId"`
	Content      string     `json:"content"`
	ParentID     *uuid.UUID `json:"parentId,omitempty"`
	LikeCount    int64      `json:"likeCount"`
	DislikeCount int64      `json:"dislikeCount"`
	CreatedAt    time.Time  `json:"createdAt"`
	Author       *Author    `json:"author,omitempty"`
	ReplyCount   int64      `json:"replyCount"`
}

func newView(c *Comment) View {
	return View{
		ID:           c.ID,
		VideoID:      c.VideoID,
		UserID:       c.UserID,
		Content:      c.Content,
		ParentID:     c.ParentID,
		LikeCount:    c.LikeCount,
		DislikeCount: c.DislikeCount,
		CreatedAt:    c.CreatedAt,
	}
}

// Node is a comment with its direct replies. ReplyCount covers all descendants.
type Node struct {
	View
	Children []*Node `json:"children"`
}

// ReactionResult is the comment's counters after a reaction toggle
type ReactionResult struct {
	CommentID    uuid.UUID `json:"commentId"`
	LikeCount    int64     `json:"likeCount"`
	DislikeCount int64     `json:"dislikeCount"`
	Reaction     Reaction  `json:"reaction"`
}

// VideoRef is the part of a video the comment service needs
type VideoRef struct {
	ID         uuid.UUID
	UploaderID uuid.UUID
	IsDeleted  bool
}

// DeleteResult reports the size of a cascade delete
type DeleteResult struct {
	Deleted int `json:"deleted"`
}
