package user

import (
	httpHandler "github.com/consensuslabs/reelstream/backend/internal/http"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for profile endpoints
type Handler struct {
	service         Service
	responseHandler httpHandler.ResponseHandler
}

// NewHandler creates a new profile handler instance
func NewHandler(service Service, responseHandler httpHandler.ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers profile routes; requireAuth guards the /me endpoints
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.GET("/:id", h.GetProfile)

		me := users.Group("/me", requireAuth)
		me.GET("", h.GetMyProfile)
		me.PUT("", h.UpdateProfile)
		me.PUT("/password", h.ChangePassword)
		me.POST("/avatar", h.UploadAvatar)
	}
}

// @Summary Get current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} http.Response{data=Profile}
// @Failure 401 {object} http.Response
// @Router /users/me [get]
func (h *Handler) GetMyProfile(c *gin.Context) {
	userID, ok := httpHandler.UserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to load profile")
		return
	}
	h.responseHandler.SuccessResponse(c, profile, "Profile retrieved successfully")
}

// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} http.Response{data=Profile}
// @Failure 404 {object} http.Response
// @Router /users/{id} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	id, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid user ID")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to load profile")
		return
	}
	profile.Email = ""
	h.responseHandler.SuccessResponse(c, profile, "Profile retrieved successfully")
}

// @Summary Update current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} http.Response{data=Profile}
// @Failure 400 {object} http.Response
// @Failure 409 {object} http.Response
// @Router /users/me [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := httpHandler.UserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.ValidationErrorResponse(c, "request", "Invalid request format")
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to update profile")
		return
	}
	h.responseHandler.SuccessResponse(c, profile, "Profile updated successfully")
}

// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} http.Response
// @Failure 400 {object} http.Response
// @Router /users/me/password [put]
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := httpHandler.UserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.ValidationErrorResponse(c, "request", "Invalid request format")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to change password")
		return
	}
	h.responseHandler.SuccessResponse(c, nil, "Password changed successfully")
}

// @Summary Upload avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "JPEG or PNG image"
// @Success 200 {object} http.Response{data=AvatarResponse}
// @Failure 400 {object} http.Response
// @Router /users/me/avatar [post]
func (h *Handler) UploadAvatar(c *gin.Context) {
	userID, ok := httpHandler.UserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "file", "Avatar file is required")
		return
	}

	resp, err := h.service.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to upload avatar")
		return
	}
	h.responseHandler.SuccessResponse(c, resp, "Avatar updated successfully")
}
