package follow

import (
	httpHandler "github.com/consensuslabs/reelstream/backend/internal/http"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the social graph
type Handler struct {
	service         Service
	responseHandler httpHandler.ResponseHandler
}

// NewHandler creates a new follow handler instance
func NewHandler(service Service, responseHandler httpHandler.ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers follow routes under /users/:id
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.POST("/:id/follow", requireAuth, h.ToggleFollow)
		users.GET("/:id/follow-status", requireAuth, h.FollowStatus)
		users.GET("/:id/following", optionalAuth, h.ListFollowing)
		users.GET("/:id/followers", optionalAuth, h.ListFollowers)
	}
}

// @Summary Follow or unfollow a user
// @Tags follow
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} http.Response{data=ToggleResult}
// @Failure 400 {object} http.Response "Cannot follow yourself"
// @Failure 404 {object} http.Response
// @Router /users/{id}/follow [post]
func (h *Handler) ToggleFollow(c *gin.Context) {
	me, ok := httpHandler.UserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "User not authenticated")
		return
	}
	target, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid user ID")
		return
	}

	result, err := h.service.Toggle(c.Request.Context(), me, target)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to update follow")
		return
	}

	message := "Unfollowed successfully"
	if result.Following {
		message = "Followed successfully"
	}
	h.responseHandler.SuccessResponse(c, result, message)
}

// @Summary Relationship between the caller and a user
// @Tags follow
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} http.Response{data=Relationship}
// @Router /users/{id}/follow-status [get]
func (h *Handler) FollowStatus(c *gin.Context) {
	me, ok := httpHandler.UserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "User not authenticated")
		return
	}
	target, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid user ID")
		return
	}

	rel, err := h.service.Relationship(c.Request.Context(), me, target)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to load follow status")
		return
	}
	h.responseHandler.SuccessResponse(c, rel, "Follow status retrieved successfully")
}

type listFunc func(c *gin.Context, userID uuid.UUID, viewer *uuid.UUID, req ListRequest) (interface{}, error)

func (h *Handler) list(c *gin.Context, fn listFunc) {
	userID, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid user ID")
		return
	}

	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.responseHandler.ValidationErrorResponse(c, "query", "Invalid query parameters")
		return
	}

	var viewer *uuid.UUID
	if id, ok := httpHandler.UserID(c); ok {
		viewer = &id
	}

	page, err := fn(c, userID, viewer, req)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to load follow list")
		return
	}
	h.responseHandler.SuccessResponse(c, page, "Follow list retrieved successfully")
}

// @Summary Accounts a user follows
// @Tags follow
// @Produce json
// @Param id path string true "User ID"
// @Param search query string false "Username or handle substring"
// @Param order query string false "asc or desc by follow time"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} http.Response{data=pagination.Page[UserRow]}
// @Router /users/{id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	h.list(c, func(c *gin.Context, userID uuid.UUID, viewer *uuid.UUID, req ListRequest) (interface{}, error) {
		return h.service.ListFollowing(c.Request.Context(), userID, viewer, req, httpHandler.PageParams(c))
	})
}

// @Summary Accounts following a user
// @Tags follow
// @Produce json
// @Param id path string true "User ID"
// @Param search query string false "Username or handle substring"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} http.Response{data=pagination.Page[UserRow]}
// @Router /users/{id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	h.list(c, func(c *gin.Context, userID uuid.UUID, viewer *uuid.UUID, req ListRequest) (interface{}, error) {
		return h.service.ListFollowers(c.Request.Context(), userID, viewer, req, httpHandler.PageParams(c))
	})
}
