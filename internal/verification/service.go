// Package verification issues and checks the short-lived email codes used at registration.
package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/cache"
	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
)

const (
	keyPrefix  = "verify:"
	codeLength = 6
	DefaultTTL = 5 * time.Minute
)

var (
	ErrCodeExpired  = apperrors.Invalid(apperrors.ErrMsgCodeExpired)
	ErrCodeMismatch = apperrors.Invalid(apperrors.ErrMsgCodeMismatch)
)

// Service issues, checks and consumes verification codes
type Service interface {
	Send(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
	Consume(ctx context.Context, email string) error
}

type service struct {
	cache  cache.Service
	sender Sender
	ttl    time.Duration
	logger logger.Logger
}

// NewService creates a verification service. A non-positive ttl selects DefaultTTL.
func NewService(cache cache.Service, sender Sender, ttl time.Duration, log logger.Logger) Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &service{cache: cache, sender: sender, ttl: ttl, logger: log}
}

func key(email string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Send stores a fresh code, replacing any previous one, and dispatches it
func (s *service) Send(ctx context.Context, email string) error {
	code, err := randomCode(codeLength)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	if err := s.cache.Set(ctx, key(email), code, s.ttl); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	if err := s.sender.Send(ctx, email, code); err != nil {
		// An undeliverable code must not stay valid
		if delErr := s.cache.Delete(ctx, key(email)); delErr != nil {
			s.logger.LogWarn("Failed to discard undelivered code", map[string]interface{}{
				"email": email,
				"error": delErr.Error(),
			})
		}
		return fmt.Errorf("failed to send code: %w", err)
	}

	s.logger.LogInfo("Verification code sent", map[string]interface{}{"email": email})
	return nil
}

// Verify checks code against the stored one without consuming it
func (s *service) Verify(ctx context.Context, email, code string) error {
	stored, err := s.cache.Get(ctx, key(email))
	if errors.Is(err, cache.ErrCacheMiss) {
		return ErrCodeExpired
	}
	if err != nil {
		return fmt.Errorf("failed to read code: %w", err)
	}
	if strings.TrimSpace(code) != stored {
		return ErrCodeMismatch
	}
	return nil
}

// Consume deletes the code so it cannot be reused
func (s *service) Consume(ctx context.Context, email string) error {
	return s.cache.Delete(ctx, key(email))
}

func randomCode(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}
