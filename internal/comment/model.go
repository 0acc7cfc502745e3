package comment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a video. A nil ParentID marks a root comment.
type Comment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"videoId"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index" json:"parentId,omitempty"`
	LikeCount    int64      `gorm:"not null;default:0" json:"likeCount"`
	DislikeCount int64      `gorm:"not null;default:0" json:"dislikeCount"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return nil
}

// Interaction is one user's like or dislike of a comment. It is the source of
// truth for the comment counters.
type Interaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_interactions_pair" json:"userId"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_interactions_pair;index" json:"commentId"`
	IsLike    bool      `gorm:"not null" json:"isLike"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Interaction model
func (Interaction) TableName() string {
	return "comment_interactions"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
	return nil
}

// Reaction is a caller's current stance on a comment
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
	ReactionNone    Reaction = "none"
)

func reactionOf(i *Interaction) Reaction {
	switch {
	case i == nil:
		return ReactionNone
	case i.IsLike:
		return ReactionLike
	default:
		return ReactionDislike
	}
}
