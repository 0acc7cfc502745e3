package video

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"
)

// Feed orderings
const (
	OrderLatest      = "latest"
	OrderHot         = "hot"
	OrderRecommended = "recommended"
)

// DefaultHistoryLimit is the number of watched videos returned by History
const DefaultHistoryLimit = 50

// ListQuery selects videos for a feed or a per-user listing
type ListQuery struct {
	Order string
	// UploaderIDs restricts the listing to these uploaders when non-nil
	UploaderIDs []uuid.UUID
	// IncludePrivate also lists non-public videos, used for the owner's own list
	IncludePrivate bool
}

// Config represents upload limits
type Config struct {
	MaxVideoMB int64
	MaxImageMB int64
}

// UploadRequest carries the text fields of an upload
type UploadRequest struct {
	Title       string `form:"title" validate:"required,min=1,max=255"`
	Description string `form:"description" validate:"max=5000"`
}

// UploadInput is an upload request with its files
type UploadInput struct {
	UploadRequest
	Video *multipart.FileHeader
	Cover *multipart.FileHeader
}

// Uploader is the public summary of a video's author
type Uploader struct {
	ID             uuid.UUID `json:"id"`
	UniqueID       string    `json:"uniqueId"`
	Username       string    `json:"username"`
	ProfilePicture string    `json:"profilePicture"`
}

// Item is a video as shown in feeds and listings
type Item struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	CoverURL     string    `json:"coverUrl"`
	Duration     int       `json:"duration"`
	IsPublic     bool      `json:"isPublic"`
	ViewCount    int64     `json:"viewCount"`
	LikeCount    int64     `json:"likeCount"`
	CollectCount int64     `json:"collectCount"`
	CommentCount int64     `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	Uploader     Uploader  `json:"uploader"`
}

// Relationship is the viewer's follow state towards the uploader
type Relationship struct {
	IsFollowed bool `json:"isFollowed"`
	IsFollower bool `json:"isFollower"`
	IsMutual   bool `json:"isMutual"`
}

// Detail is a single video with uploader stats and viewer flags
type Detail struct {
	Item
	UploaderFollowerCount int64         `json:"uploaderFollowerCount"`
	Relationship          *Relationship `json:"relationship,omitempty"`
	IsLiked               bool          `json:"isLiked"`
	IsCollected           bool          `json:"isCollected"`
}

// UploadResult is returned after a successful upload
type UploadResult struct {
	Video *Item  `json:"video"`
	URL   string `json:"url"`
}

// DeleteResult reports a soft delete
type DeleteResult struct {
	ID      uuid.UUID `json:"id"`
	Deleted bool      `json:"deleted"`
}
