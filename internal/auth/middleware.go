package auth

import (
	"strings"

	httpHandler "github.com/consensuslabs/reelstream/backend/internal/http"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func authenticate(c *gin.Context, validator TokenValidator) bool {
	token, ok := bearerToken(c)
	if !ok {
		return false
	}
	claims, err := validator.ValidateToken(token)
	if err != nil {
		return false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return false
	}
	httpHandler.SetUserID(c, userID)
	c.Set("email", claims.Email)
	return true
}

// AuthMiddleware creates a middleware for authentication
func AuthMiddleware(validator TokenValidator, responseHandler httpHandler.ResponseHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			responseHandler.UnauthorizedResponse(c, "Authorization header is required")
			c.Abort()
			return
		}
		if !authenticate(c, validator) {
			responseHandler.UnauthorizedResponse(c, "Invalid token")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware creates a middleware that attempts to authenticate but doesn't require it
func OptionalAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, validator)
		c.Next()
	}
}
