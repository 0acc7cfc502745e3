package auth

import (
	"context"

	"github.com/consensuslabs/reelstream/backend/internal/user"
)

// AuthService handles authentication operations
type AuthService interface {
	SendCode(ctx context.Context, req SendCodeRequest) error
	Register(ctx context.Context, req RegisterRequest) (*user.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ValidateToken(token string) (*TokenClaims, error)
}

// TokenService handles JWT operations
type TokenService interface {
	GenerateAccessToken(u *user.User) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// TokenValidator is what the middleware needs from the auth service
type TokenValidator interface {
	ValidateToken(token string) (*TokenClaims, error)
}
