package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/consensuslabs/reelstream/backend/internal/user"
	"github.com/consensuslabs/reelstream/backend/internal/verification"
	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCredentials = apperrors.Unauthorized(apperrors.ErrMsgBadCredentials)
	ErrAccountDisabled    = apperrors.Forbidden("account is disabled")
	ErrInvalidToken       = apperrors.Unauthorized("invalid or expired token")
)

// Service handles authentication-related business logic
type Service struct {
	users    user.Repository
	codes    verification.Service
	tokens   TokenService
	handles  user.HandleGenerator
	config   *Config
	validate *validator.Validate
	logger   logger.Logger
	now      func() time.Time
}

// NewService creates a new auth service instance
func NewService(users user.Repository, codes verification.Service, tokens TokenService, handles user.HandleGenerator, config *Config, log logger.Logger) *Service {
	return &Service{
		users:    users,
		codes:    codes,
		tokens:   tokens,
		handles:  handles,
		config:   config,
		validate: validator.New(),
		logger:   log,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SendCode issues a registration code for an email address
func (s *Service) SendCode(ctx context.Context, req SendCodeRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return apperrors.FromValidator(err)
	}
	return s.codes.Send(ctx, normalizeEmail(req.Email))
}

// Register creates an account after the email code has been verified
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.FromValidator(err)
	}
	if err := user.ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := user.ValidatePassword("password", req.Password); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if err := s.codes.Verify(ctx, email, req.Code); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, user.ErrEmailTaken
	}
	taken, err = s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, user.ErrUsernameTaken
	}

	hash, err := user.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Handle:   s.handles.Next(),
		Email:    email,
		Username: req.Username,
		Password: hash,
		FullName: req.FullName,
		IsActive: true,
		Level:    1,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := s.codes.Consume(ctx, email); err != nil {
		s.logger.LogWarn("Failed to consume verification code", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
	}

	s.logger.LogInfo("User registered", map[string]interface{}{
		"user_id":  u.ID.String(),
		"username": u.Username,
	})
	return u, nil
}

// Login authenticates by email or username and issues an access token
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.FromValidator(err)
	}

	u, err := s.findByIdentifier(ctx, strings.TrimSpace(req.Identifier))
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(u.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.tokens.GenerateAccessToken(u)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	now := s.now()
	if err := s.users.RecordLogin(ctx, u.ID, now); err != nil {
		s.logger.LogWarn("Failed to record login", map[string]interface{}{
			"user_id": u.ID.String(),
			"error":   err.Error(),
		})
	} else {
		u.LoginCount++
		u.LastLoginAt = &now
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.config.JWT.AccessTokenTTL.Seconds()),
		User:        u,
	}, nil
}

// findByIdentifier tries the email first, then the username
func (s *Service) findByIdentifier(ctx context.Context, identifier string) (*user.User, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(identifier))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	u, err = s.users.GetByUsername(ctx, identifier)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	return u, err
}

// ValidateToken validates an access token
func (s *Service) ValidateToken(token string) (*TokenClaims, error) {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
