package video

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video is a stored upload with its denormalised counters
type Video struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UploaderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"uploaderId"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	FilePath     string    `gorm:"size:512;not null" json:"filePath"`
	CoverPath    string    `gorm:"size:512" json:"coverPath"`
	Duration     int       `gorm:"not null;default:0" json:"duration"` // whole seconds
	IsPublic     bool      `gorm:"not null;default:true;index" json:"isPublic"`
	IsDeleted    bool      `gorm:"not null;default:false;index" json:"isDeleted"`
	ViewCount    int64     `gorm:"not null;default:0" json:"viewCount"`
	LikeCount    int64     `gorm:"not null;default:0" json:"likeCount"`
	CollectCount int64     `gorm:"not null;default:0" json:"collectCount"`
	CommentCount int64     `gorm:"not null;default:0" json:"commentCount"`
	CreatedAt    time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName specifies the table name for the Video model
func (Video) TableName() string {
	return "videos"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	now := time.Now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
	return nil
}

// Row is a video joined with its uploader's public fields
type Row struct {
	Video
	UploaderName   string `gorm:"column:uploader_name"`
	UploaderHandle string `gorm:"column:uploader_handle"`
	UploaderAvatar string `gorm:"column:uploader_avatar"`
}
