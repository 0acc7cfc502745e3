package video

import (
	"strconv"

	httpHandler "github.com/consensuslabs/reelstream/backend/internal/http"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VideoHandler handles HTTP requests for video operations
type VideoHandler struct {
	service         Service
	responseHandler httpHandler.ResponseHandler
}

// NewVideoHandler creates a new VideoHandler instance
func NewVideoHandler(service Service, responseHandler httpHandler.ResponseHandler) *VideoHandler {
	return &VideoHandler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers feed, upload and video page routes
func (h *VideoHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	videos := router.Group("/videos")
	{
		videos.GET("/latest", h.feed(OrderLatest))
		videos.GET("/hot", h.feed(OrderHot))
		videos.GET("/recommended", h.feed(OrderRecommended))
		videos.GET("/following", requireAuth, h.HandleFollowing)
		videos.GET("/mine", requireAuth, h.HandleMine)
		videos.GET("/liked", requireAuth, h.HandleLiked)
		videos.GET("/collected", requireAuth, h.HandleCollected)
		videos.POST("", requireAuth, h.HandleUpload)
		videos.GET("/:id", optionalAuth, h.HandleDetail)
		videos.DELETE("/:id", requireAuth, h.HandleDelete)
	}
	router.GET("/history", requireAuth, h.HandleHistory)
}

// @Summary Public video feed
// @Tags video
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size (max 100)"
// @Success 200 {object} http.Response{data=pagination.Page[Item]}
// @Router /videos/latest [get]
// @Router /videos/hot [get]
// @Router /videos/recommended [get]
func (h *VideoHandler) feed(order string) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := h.service.Feed(c.Request.Context(), order, httpHandler.PageParams(c))
		if err != nil {
			h.responseHandler.HandleServiceError(c, err, "Failed to load videos")
			return
		}
		h.responseHandler.SuccessResponse(c, page, "Videos retrieved successfully")
	}
}

// userList serves a listing that belongs to the authenticated user
func (h *VideoHandler) userList(c *gin.Context, list func(userID uuid.UUID) (interface{}, error)) {
	userID, ok := httpHandler.UserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "User not authenticated")
		return
	}
	data, err := list(userID)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to load videos")
		return
	}
	h.responseHandler.SuccessResponse(c, data, "Videos retrieved successfully")
}

// @Summary Videos from followed users
// @Tags video
// @Produce json
// @Security BearerAuth
// @Success 200 {object} http.Response{data=pagination.Page[Item]}
// @Router /videos/following [get]
func (h *VideoHandler) HandleFollowing(c *gin.Context) {
	h.userList(c, func(userID uuid.UUID) (interface{}, error) {
		return h.service.Following(c.Request.Context(), userID, httpHandler.PageParams(c))
	})
}

// @Summary My uploads
// @Tags video
// @Produce json
// @Security BearerAuth
// @Success 200 {object} http.Response{data=pagination.Page[Item]}
// @Router /videos/mine [get]
func (h *VideoHandler) HandleMine(c *gin.Context) {
	h.userList(c, func(userID uuid.UUID) (interface{}, error) {
		return h.service.Mine(c.Request.Context(), userID, httpHandler.PageParams(c))
	})
}

// @Summary Videos I liked
// @Tags video
// @Produce json
// @Security BearerAuth
// @Success 200 {object} http.Response{data=pagination.Page[Item]}
// @Router /videos/liked [get]
func (h *VideoHandler) HandleLiked(c *gin.Context) {
	h.userList(c, func(userID uuid.UUID) (interface{}, error) {
		return h.service.Liked(c.Request.Context(), userID, httpHandler.PageParams(c))
	})
}

// @Summary Videos I collected
// @Tags video
// @Produce json
// @Security BearerAuth
// @Success 200 {object} http.Response{data=pagination.Page[Item]}
// @Router /videos/collected [get]
func (h *VideoHandler) HandleCollected(c *gin.Context) {
	h.userList(c, func(userID uuid.UUID) (interface{}, error) {
		return h.service.Collected(c.Request.Context(), userID, httpHandler.PageParams(c))
	})
}

// @Summary Watch history
// @Tags video
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of videos (default 50)"
// @Success 200 {object} http.Response{data=[]Item}
// @Router /history [get]
func (h *VideoHandler) HandleHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	h.userList(c, func(userID uuid.UUID) (interface{}, error) {
		return h.service.History(c.Request.Context(), userID, limit)
	})
}

// @Summary Upload video
// @Description Upload a video file with its cover image
// @Tags video
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param video formData file true "Video file (mp4, webm, mov)"
// @Param cover formData file true "Cover image (jpeg, png)"
// @Param title formData string true "Video title (1-255 characters)"
// @Param description formData string false "Video description (max 5000 characters)"
// @Success 201 {object} http.Response{data=UploadResult}
// @Failure 400 {object} http.Response "Validation or processing error"
// @Failure 401 {object} http.Response "Unauthorized"
// @Failure 500 {object} http.Response "Storage error"
// @Router /videos [post]
func (h *VideoHandler) HandleUpload(c *gin.Context) {
	userID, ok := httpHandler.UserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var in UploadInput
	if err := c.ShouldBind(&in.UploadRequest); err != nil {
		h.responseHandler.ValidationErrorResponse(c, "form", "Invalid upload form")
		return
	}
	// missing files are reported by the service as field errors
	in.Video, _ = c.FormFile("video")
	in.Cover, _ = c.FormFile("cover")

	result, err := h.service.Upload(c.Request.Context(), userID, in)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to upload video")
		return
	}
	h.responseHandler.CreatedResponse(c, result, "Video uploaded successfully")
}

// @Summary Video detail
// @Tags video
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} http.Response{data=Detail}
// @Failure 404 {object} http.Response
// @Router /videos/{id} [get]
func (h *VideoHandler) HandleDetail(c *gin.Context) {
	id, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video ID")
		return
	}

	var viewer *uuid.UUID
	if userID, ok := httpHandler.UserID(c); ok {
		viewer = &userID
	}

	detail, err := h.service.Detail(c.Request.Context(), id, viewer)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to load video")
		return
	}
	h.responseHandler.SuccessResponse(c, detail, "Video retrieved successfully")
}

// @Summary Delete video
// @Tags video
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} http.Response{data=DeleteResult}
// @Failure 403 {object} http.Response
// @Failure 404 {object} http.Response
// @Router /videos/{id} [delete]
func (h *VideoHandler) HandleDelete(c *gin.Context) {
	userID, ok := httpHandler.UserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "User not authenticated")
		return
	}
	id, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video ID")
		return
	}

	result, err := h.service.Delete(c.Request.Context(), id, userID)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to delete video")
		return
	}
	h.responseHandler.SuccessResponse(c, result, "Video deleted successfully")
}
