package interaction

import (
	httpHandler "github.com/consensuslabs/reelstream/backend/internal/http"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for likes and collections
type Handler struct {
	service         Service
	responseHandler httpHandler.ResponseHandler
}

// NewHandler creates a new interaction handler instance
func NewHandler(service Service, responseHandler httpHandler.ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers like and collection routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	videos := router.Group("/videos")
	{
		videos.POST("/:id/like", requireAuth, h.ToggleLike)
		videos.POST("/:id/collect", requireAuth, h.ToggleCollect)
		videos.GET("/:id/interaction", optionalAuth, h.GetStatus)
	}
}

func (h *Handler) toggle(c *gin.Context, fn func(c *gin.Context, userID, videoID uuid.UUID) (*ToggleResult, error), on, off string) {
	userID, ok := httpHandler.UserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "User not authenticated")
		return
	}
	videoID, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video ID")
		return
	}

	result, err := fn(c, userID, videoID)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to update interaction")
		return
	}

	message := off
	if result.Active {
		message = on
	}
	h.responseHandler.SuccessResponse(c, result, message)
}

// @Summary Like or unlike a video
// @Tags interaction
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} http.Response{data=ToggleResult}
// @Failure 404 {object} http.Response
// @Router /videos/{id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	h.toggle(c, func(c *gin.Context, userID, videoID uuid.UUID) (*ToggleResult, error) {
		return h.service.ToggleLike(c.Request.Context(), userID, videoID)
	}, "Video liked", "Like removed")
}

// @Summary Collect or uncollect a video
// @Tags interaction
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} http.Response{data=ToggleResult}
// @Failure 404 {object} http.Response
// @Router /videos/{id}/collect [post]
func (h *Handler) ToggleCollect(c *gin.Context) {
	h.toggle(c, func(c *gin.Context, userID, videoID uuid.UUID) (*ToggleResult, error) {
		return h.service.ToggleCollect(c.Request.Context(), userID, videoID)
	}, "Video collected", "Collection removed")
}

// @Summary Like and collect status of a video
// @Tags interaction
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} http.Response{data=Status}
// @Failure 404 {object} http.Response
// @Router /videos/{id}/interaction [get]
func (h *Handler) GetStatus(c *gin.Context) {
	videoID, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video ID")
		return
	}

	var viewer *uuid.UUID
	if id, ok := httpHandler.UserID(c); ok {
		viewer = &id
	}

	status, err := h.service.GetStatus(c.Request.Context(), viewer, videoID)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to load interaction status")
		return
	}
	h.responseHandler.SuccessResponse(c, status, "Interaction status retrieved successfully")
}
