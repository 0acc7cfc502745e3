package auth

import (
	httpHandler "github.com/consensuslabs/reelstream/backend/internal/http"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for auth endpoints
type Handler struct {
	service         AuthService
	responseHandler httpHandler.ResponseHandler
}

// NewHandler creates a new auth handler instance
func NewHandler(service AuthService, responseHandler httpHandler.ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers all auth routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/code", h.handleSendCode)
		auth.POST("/register", h.handleRegister)
		auth.POST("/login", h.handleLogin)
	}
}

// @Summary Send verification code
// @Description Email a 6 digit code used to complete registration
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SendCodeRequest true "Email address"
// @Success 200 {object} http.Response "Code sent"
// @Failure 400 {object} http.Response "Invalid email"
// @Router /auth/code [post]
func (h *Handler) handleSendCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.ValidationErrorResponse(c, "request", "Invalid request format")
		return
	}

	if err := h.service.SendCode(c.Request.Context(), req); err != nil {
		h.responseHandler.HandleServiceError(c, err, "Failed to send verification code")
		return
	}

	h.responseHandler.SuccessResponse(c, nil, "Verification code sent")
}

// @Summary Register new user
// @Description Register a new user account with an email verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} http.Response{data=user.User} "Registration successful"
// @Failure 400 {object} http.Response "Invalid request or verification code"
// @Failure 409 {object} http.Response "Email or username already registered"
// @Router /auth/register [post]
func (h *Handler) handleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.ValidationErrorResponse(c, "request", "Invalid request format")
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Registration failed")
		return
	}

	h.responseHandler.CreatedResponse(c, u, "Registration successful")
}

// @Summary Login user
// @Description Authenticate by email or username and return a JWT access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} http.Response{data=LoginResponse} "Login successful"
// @Failure 400 {object} http.Response "Invalid request format"
// @Failure 401 {object} http.Response "Invalid credentials"
// @Router /auth/login [post]
func (h *Handler) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.ValidationErrorResponse(c, "request", "Invalid request format")
		return
	}

	response, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.responseHandler.HandleServiceError(c, err, "Login failed")
		return
	}

	h.responseHandler.SuccessResponse(c, response, "Login successful")
}
