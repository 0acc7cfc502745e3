package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockRepository) InsertBehavior(ctx context.Context, b *Behavior) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepository) InsertView(ctx context.Context, v *View) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockRepository) UpsertVideoStats(ctx context.Context, videoID uuid.UUID, fields map[string]interface{}) error {
	return m.Called(ctx, videoID, fields).Error(0)
}

func (m *mockRepository) IncrementViews(ctx context.Context, videoID uuid.UUID) error {
	return m.Called(ctx, videoID).Error(0)
}

func (m *mockRepository) GetVideoAnalytics(ctx context.Context, videoID uuid.UUID) (*VideoAnalytics, error) {
	args := m.Called(ctx, videoID)
	if doc, ok := args.Get(0).(*VideoAnalytics); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) RecentVideoIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID, limit)
	if ids, ok := args.Get(0).([]uuid.UUID); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Popular(ctx context.Context, since time.Time, limit int) ([]PopularVideo, error) {
	args := m.Called(ctx, since, limit)
	if videos, ok := args.Get(0).([]PopularVideo); ok {
		return videos, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockHistory struct {
	mock.Mock
}

func (m *mockHistory) Upsert(ctx context.Context, h *WatchHistory) error {
	return m.Called(ctx, h).Error(0)
}

type mockVideos struct {
	mock.Mock
}

func (m *mockVideos) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
