package dbtest

import (
	"testing"
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/user"
	"github.com/consensuslabs/reelstream/backend/internal/video"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUser inserts a user with a unique handle and email
func CreateUser(t *testing.T, db *gorm.DB, username string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	u := &user.User{
		ID:                id,
		Handle:            "h" + id.String()[:8],
		Email:             username + "@example.com",
		Username:          username,
		Password:          "x",
		PasswordUpdatedAt: time.Now(),
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return id
}

// CreateVideo inserts a public video. fields overwrite columns after the insert,
// since gorm skips zero values that carry a column default.
func CreateVideo(t *testing.T, db *gorm.DB, uploader uuid.UUID, title string, createdAt time.Time, fields map[string]interface{}) uuid.UUID {
	t.Helper()
	v := &video.Video{
		UploaderID: uploader,
		Title:      title,
		FilePath:   "videos/" + title + ".mp4",
		CoverPath:  "covers/" + title + ".jpg",
		IsPublic:   true,
		CreatedAt:  createdAt,
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("failed to create video %s: %v", title, err)
	}
	if len(fields) > 0 {
		if err := db.Model(&video.Video{}).Where("id = ?", v.ID).Updates(fields).Error; err != nil {
			t.Fatalf("failed to update video %s: %v", title, err)
		}
	}
	return v.ID
}

// Column reads one column of one row
func Column[T any](t *testing.T, db *gorm.DB, table, column string, id uuid.UUID) T {
	t.Helper()
	var value T
	if err := db.Table(table).Select(column).Where("id = ?", id).Row().Scan(&value); err != nil {
		t.Fatalf("failed to read %s.%s: %v", table, column, err)
	}
	return value
}

// Count counts the rows of a table matching the condition
func Count(t *testing.T, db *gorm.DB, table, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Table(table).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
