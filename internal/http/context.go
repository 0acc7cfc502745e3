package http

import (
	"strconv"

	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey is the gin context key holding the authenticated user's uuid.UUID
const UserIDKey = "userID"

// SetUserID stores the authenticated user on the request context
func SetUserID(c *gin.Context, id uuid.UUID) {
	c.Set(UserIDKey, id)
}

// UserID returns the authenticated user, if any
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// PageParams reads the page and size query parameters
func PageParams(c *gin.Context) pagination.Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(pagination.DefaultSize)))
	return pagination.New(page, size)
}

// UUIDParam parses a path parameter as a UUID
func UUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}
