package verification

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/cache"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) Ping(ctx context.Context) error { return nil }

func (m *mockCache) Close() error { return nil }

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

func TestSendStoresAndDispatchesCode(t *testing.T) {
	ctx := context.Background()
	c := new(mockCache)
	sender := new(mockSender)
	svc := NewService(c, sender, time.Minute, logger.NewNopLogger())

	var stored string
	c.On("Set", ctx, "verify:alice@example.com", mock.AnythingOfType("string"), time.Minute).
		Run(func(args mock.Arguments) { stored = args.String(2) }).
		Return(nil)
	sender.On("Send", ctx, "Alice@example.com", mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, svc.Send(ctx, "Alice@example.com"))
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), stored)
	sender.AssertCalled(t, "Send", ctx, "Alice@example.com", stored)
}

func TestSendDiscardsCodeWhenDeliveryFails(t *testing.T) {
	ctx := context.Background()
	c := new(mockCache)
	sender := new(mockSender)
	svc := NewService(c, sender, 0, logger.NewNopLogger())

	c.On("Set", ctx, "verify:bob@example.com", mock.Anything, DefaultTTL).Return(nil)
	c.On("Delete", ctx, "verify:bob@example.com").Return(nil)
	sender.On("Send", ctx, "bob@example.com", mock.Anything).Return(errors.New("smtp down"))

	err := svc.Send(ctx, "bob@example.com")
	assert.Error(t, err)
	c.AssertCalled(t, "Delete", ctx, "verify:bob@example.com")
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("missing code is expired", func(t *testing.T) {
		c := new(mockCache)
		c.On("Get", ctx, "verify:a@b.com").Return("", cache.ErrCacheMiss)
		svc := NewService(c, new(mockSender), 0, logger.NewNopLogger())

		assert.ErrorIs(t, svc.Verify(ctx, "a@b.com", "123456"), ErrCodeExpired)
	})

	t.Run("wrong code", func(t *testing.T) {
		c := new(mockCache)
		c.On("Get", ctx, "verify:a@b.com").Return("123456", nil)
		svc := NewService(c, new(mockSender), 0, logger.NewNopLogger())

		assert.ErrorIs(t, svc.Verify(ctx, "a@b.com", "654321"), ErrCodeMismatch)
	})

	t.Run("matching code", func(t *testing.T) {
		c := new(mockCache)
		c.On("Get", ctx, "verify:a@b.com").Return("123456", nil)
		svc := NewService(c, new(mockSender), 0, logger.NewNopLogger())

		assert.NoError(t, svc.Verify(ctx, " A@b.com", " 123456 "))
	})
}
