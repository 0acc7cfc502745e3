package analytics

import (
	httpHandler "github.com/consensuslabs/reelstream/backend/internal/http"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for analytics endpoints
type Handler struct {
	service         Service
	responseHandler httpHandler.ResponseHandler
}

// NewHandler creates a new analytics handler instance
func NewHandler(service Service, responseHandler httpHandler.ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers analytics routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	router.POST("/videos/:id/views", requireAuth, h.LogView)
	router.GET("/videos/:id/analytics", h.GetVideoAnalytics)
	router.GET("/analytics/popular", h.PopularVideos)
}

// @Summary Report a video view
// @Description Records playback duration and progress and updates the caller's watch history
// @Tags analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Param request body ViewRequest true "Playback report"
// @Success 201 {object} http.Response
// @Failure 404 {object} http.Response
// @Router /videos/{id}/views [post]
func (h *Handler) LogView(c *gin.Context) {
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

	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.ValidationErrorResponse(c, "request", "Invalid request format")
		return
	}

	if err := h.service.LogView(c.Request.Context(), userID, videoID, req); err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to record view")
		return
	}
	h.responseHandler.CreatedResponse(c, nil, "View recorded")
}

// @Summary Video analytics
// @Tags analytics
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} http.Response{data=VideoAnalytics}
// @Failure 404 {object} http.Response
// @Router /videos/{id}/analytics [get]
func (h *Handler) GetVideoAnalytics(c *gin.Context) {
	videoID, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video ID")
		return
	}

	doc, err := h.service.GetVideoAnalytics(c.Request.Context(), videoID)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to load analytics")
		return
	}
	h.responseHandler.SuccessResponse(c, doc, "Analytics retrieved successfully")
}

// @Summary Popular videos
// @Description Videos ranked by views over the last days
// @Tags analytics
// @Produce json
// @Param days query int false "Window in days (default 7)"
// @Param limit query int false "Number of videos (default 20, max 100)"
// @Success 200 {object} http.Response{data=[]PopularVideo}
// @Router /analytics/popular [get]
func (h *Handler) PopularVideos(c *gin.Context) {
	var req PopularRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.responseHandler.ValidationErrorResponse(c, "query", "Invalid query parameters")
		return
	}

	videos, err := h.service.PopularVideos(c.Request.Context(), req)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to load popular videos")
		return
	}
	h.responseHandler.SuccessResponse(c, videos, "Popular videos retrieved successfully")
}
