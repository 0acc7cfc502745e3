package analytics

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// Collection names in the document store
const (
	CollectionBehaviors = "user_behaviors"
	CollectionViews     = "video_views"
	CollectionAnalytics = "video_analytics"
)

// Behavior is one user action such as a like, a follow or a view
type Behavior struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"-"`
	UserID     string                 `bson:"user_id" json:"userId"`
	Action     string                 `bson:"action" json:"action"`
	TargetType string                 `bson:"target_type" json:"targetType"`
	TargetID   string                 `bson:"target_id" json:"targetId"`
	Metadata   map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
}

// View is a reported playback of a video
type View struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID        string             `bson:"user_id" json:"userId"`
	VideoID       string             `bson:"video_id" json:"videoId"`
	WatchDuration int64              `bson:"watch_duration" json:"watchDuration"`
	WatchProgress float64            `bson:"watch_progress" json:"watchProgress"`
	DeviceInfo    string             `bson:"device_info,omitempty" json:"deviceInfo,omitempty"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
}

// VideoAnalytics is the per-video counter snapshot
type VideoAnalytics struct {
	VideoID      string    `bson:"video_id" json:"videoId"`
	ViewCount    int64     `bson:"view_count" json:"viewCount"`
	LikeCount    int64     `bson:"like_count" json:"likeCount"`
	CollectCount int64     `bson:"collect_count" json:"collectCount"`
	CommentCount int64     `bson:"comment_count" json:"commentCount"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// PopularVideo is one row of the popularity ranking
type PopularVideo struct {
	VideoID   uuid.UUID `json:"videoId"`
	ViewCount int64     `json:"viewCount"`
}

// WatchHistory is the last recorded watch of a video by a user
type WatchHistory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_watch_history_pair" json:"userId"`
	VideoID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_watch_history_pair" json:"videoId"`
	WatchSeconds int64     `gorm:"not null;default:0" json:"watchSeconds"`
	LastWatchAt  time.Time `gorm:"not null;index" json:"lastWatchAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName specifies the table name for the WatchHistory model
func (WatchHistory) TableName() string {
	return "watch_history"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (h *WatchHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	return nil
}
