package auth

import (
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/config"
	"github.com/consensuslabs/reelstream/backend/internal/user"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL applies when the configuration leaves the TTL unset
const DefaultAccessTokenTTL = 30 * time.Minute

// Config represents authentication configuration
type Config struct {
	JWT struct {
		Secret         string
		AccessTokenTTL time.Duration
	}
}

// NewConfigFromAuthConfig creates an auth.Config from config.AuthConfig
func NewConfigFromAuthConfig(cfg *config.AuthConfig) *Config {
	authConfig := &Config{}
	authConfig.JWT.Secret = cfg.JWT.Secret
	authConfig.JWT.AccessTokenTTL = cfg.JWT.AccessTokenTTL
	if authConfig.JWT.AccessTokenTTL <= 0 {
		authConfig.JWT.AccessTokenTTL = DefaultAccessTokenTTL
	}
	return authConfig
}

// SendCodeRequest asks for a verification code
type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=32"`
	Code     string `json:"code" validate:"required,len=6"`
	FullName string `json:"fullName" validate:"max=200"`
}

// LoginRequest represents the login payload. Identifier is an email or a username.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int64      `json:"expires_in"`
	User        *user.User `json:"user"`
}

// TokenClaims represents the JWT claims
type TokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
