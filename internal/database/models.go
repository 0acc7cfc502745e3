package database

import (
	"strings"

	"github.com/consensuslabs/reelstream/backend/internal/analytics"
	"github.com/consensuslabs/reelstream/backend/internal/comment"
	"github.com/consensuslabs/reelstream/backend/internal/follow"
	"github.com/consensuslabs/reelstream/backend/internal/interaction"
	"github.com/consensuslabs/reelstream/backend/internal/user"
	"github.com/consensuslabs/reelstream/backend/internal/video"
	"gorm.io/gorm"
)

// Models returns every relational model, parents before children
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&video.Video{},
		&comment.Comment{},
		&comment.Interaction{},
		&interaction.Like{},
		&interaction.Collection{},
		&follow.Follow{},
		&analytics.WatchHistory{},
	}
}

var feedIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_videos_feed ON videos (is_public, is_deleted, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_uploader_created ON videos (uploader_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_video_parent_created ON comments (video_id, parent_id, created_at DESC)`,
}

// Migrations returns the ordered schema history
func Migrations() []Migration {
	return []Migration{
		{
			Name:    "0001_core_schema",
			Content: "users,videos,comments,comment_interactions,likes,collections,follows,watch_history",
			Apply: func(tx *gorm.DB) error {
				return tx.AutoMigrate(Models()...)
			},
		},
		{
			Name:    "0002_feed_indexes",
			Content: strings.Join(feedIndexes, ";\n"),
			Apply: func(tx *gorm.DB) error {
				for _, stmt := range feedIndexes {
					if err := tx.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
