package interaction

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like marks that a user likes a video. Existence is the state.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_pair" json:"userId"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_pair;index" json:"videoId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for the Like model
func (Like) TableName() string {
	return "likes"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	return nil
}

// Collection marks that a user saved a video. Existence is the state.
type Collection struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_collections_pair" json:"userId"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_collections_pair;index" json:"videoId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return nil
}

// Kind selects the like or the collection relation
type Kind int

const (
	KindLike Kind = iota
	KindCollect
)

func (k Kind) String() string {
	if k == KindCollect {
		return "collect"
	}
	return "like"
}

// Table is the join table of the relation
func (k Kind) Table() string {
	if k == KindCollect {
		return "collections"
	}
	return "likes"
}

// CounterColumn is the denormalised counter on the videos table
func (k Kind) CounterColumn() string {
	if k == KindCollect {
		return "collect_count"
	}
	return "like_count"
}

// Action names the behavior logged for a toggle
func (k Kind) Action(active bool) string {
	if active {
		return k.String()
	}
	return "un" + k.String()
}

func (k Kind) newRow(userID, videoID uuid.UUID) interface{} {
	if k == KindCollect {
		return &Collection{UserID: userID, VideoID: videoID}
	}
	return &Like{UserID: userID, VideoID: videoID}
}

func (k Kind) model() interface{} {
	if k == KindCollect {
		return &Collection{}
	}
	return &Like{}
}
