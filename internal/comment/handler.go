package comment

import (
	httpHandler "github.com/consensuslabs/reelstream/backend/internal/http"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler defines the HTTP handler for comment operations
type Handler struct {
	service  Service
	response httpHandler.ResponseHandler
}

// NewHandler creates a new comment handler
func NewHandler(service Service, response httpHandler.ResponseHandler) *Handler {
	return &Handler{
		service:  service,
		response: response,
	}
}

// RegisterRoutes registers the comment API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	router.GET("/videos/:id/comments", h.GetComments)
	router.GET("/videos/:id/comments/tree", h.GetCommentTree)

	protected := router.Group("", requireAuth)
	{
		protected.POST("/videos/:id/comments", h.CreateComment)
		protected.DELETE("/comments/:id", h.DeleteComment)
		protected.POST("/comments/:id/like", h.LikeComment)
		protected.POST("/comments/:id/dislike", h.DislikeComment)
		protected.GET("/comments/:id/reaction", h.GetReaction)
	}
}

// @Summary Get comments for a video
// @Description Retrieves a page of comments under one parent, each with its total reply count
// @Tags comment
// @Produce json
// @Param id path string true "Video ID (UUID)"
// @Param parent_id query string false "Parent comment ID; omit for root comments"
// @Param order query string false "latest (default) or hottest"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} http.Response{data=pagination.Page[View]} "Comments retrieved successfully"
// @Failure 400 {object} http.Response{error=http.Error} "Invalid video ID format"
// @Failure 404 {object} http.Response{error=http.Error} "Video not found"
// @Router /videos/{id}/comments [get]
func (h *Handler) GetComments(c *gin.Context) {
	videoID, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.response.ValidationErrorResponse(c, "id", "Invalid video ID format")
		return
	}

	req := ListRequest{Order: c.DefaultQuery("order", OrderLatest)}
	if raw := c.Query("parent_id"); raw != "" {
		parentID, err := uuid.Parse(raw)
		if err != nil {
			h.response.ValidationErrorResponse(c, "parent_id", "Invalid parent comment ID format")
			return
		}
		req.ParentID = &parentID
	}

	page, err := h.service.ListComments(c.Request.Context(), videoID, req, httpHandler.PageParams(c))
	if err != nil {
		h.response.HandleServiceError(c, err, "Failed to retrieve comments")
		return
	}

	h.response.SuccessResponse(c, page, "Comments retrieved successfully")
}

// @Summary Get the comment tree of a video
// @Description Returns every comment of the video nested under its parent
// @Tags comment
// @Produce json
// @Param id path string true "Video ID (UUID)"
// @Success 200 {object} http.Response{data=[]Node} "Comment tree retrieved successfully"
// @Failure 404 {object} http.Response{error=http.Error} "Video not found"
// @Router /videos/{id}/comments/tree [get]
func (h *Handler) GetCommentTree(c *gin.Context) {
	videoID, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.response.ValidationErrorResponse(c, "id", "Invalid video ID format")
		return
	}

	tree, err := h.service.GetCommentTree(c.Request.Context(), videoID)
	if err != nil {
		h.response.HandleServiceError(c, err, "Failed to retrieve comment tree")
		return
	}

	h.response.SuccessResponse(c, tree, "Comment tree retrieved successfully")
}

// @Summary Create a new comment
// @Description Creates a comment on a video, or a reply when parentId is set
// @Tags comment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID (UUID)"
// @Param comment body CreateRequest true "Comment data"
// @Success 201 {object} http.Response{data=View} "Comment created successfully"
// @Failure 400 {object} http.Response{error=http.Error} "Invalid comment data or parent"
// @Failure 401 {object} http.Response{error=http.Error} "Unauthorized - user not authenticated"
// @Failure 404 {object} http.Response{error=http.Error} "Video not found"
// @Router /videos/{id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	videoID, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.response.ValidationErrorResponse(c, "id", "Invalid video ID format")
		return
	}

	userID, ok := httpHandler.UserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.ValidationErrorResponse(c, "content", "Invalid request body")
		return
	}

	view, err := h.service.CreateComment(c.Request.Context(), videoID, userID, req)
	if err != nil {
		h.response.HandleServiceError(c, err, "Failed to create comment")
		return
	}

	h.response.CreatedResponse(c, view, "Comment created successfully")
}

// @Summary Delete a comment
// @Description Deletes a comment with all of its replies. Allowed for the author and the video owner.
// @Tags comment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID (UUID)"
// @Success 200 {object} http.Response{data=DeleteResult} "Comment deleted successfully"
// @Failure 403 {object} http.Response{error=http.Error} "Not the author or the video owner"
// @Failure 404 {object} http.Response{error=http.Error} "Comment not found"
// @Router /comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	commentID, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.response.ValidationErrorResponse(c, "id", "Invalid comment ID format")
		return
	}

	userID, ok := httpHandler.UserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	result, err := h.service.DeleteComment(c.Request.Context(), commentID, userID)
	if err != nil {
		h.response.HandleServiceError(c, err, "Failed to delete comment")
		return
	}

	h.response.SuccessResponse(c, result, "Comment deleted successfully")
}

func (h *Handler) react(c *gin.Context, like bool) {
	commentID, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.response.ValidationErrorResponse(c, "id", "Invalid comment ID format")
		return
	}

	userID, ok := httpHandler.UserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	result, err := h.service.ToggleReaction(c.Request.Context(), commentID, userID, like)
	if err != nil {
		h.response.HandleServiceError(c, err, "Failed to update reaction")
		return
	}

	h.response.SuccessResponse(c, result, "Reaction updated successfully")
}

// @Summary Toggle a like on a comment
// @Tags comment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID (UUID)"
// @Success 200 {object} http.Response{data=ReactionResult}
// @Failure 404 {object} http.Response{error=http.Error} "Comment not found"
// @Router /comments/{id}/like [post]
func (h *Handler) LikeComment(c *gin.Context) {
	h.react(c, true)
}

// @Summary Toggle a dislike on a comment
// @Tags comment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID (UUID)"
// @Success 200 {object} http.Response{data=ReactionResult}
// @Failure 404 {object} http.Response{error=http.Error} "Comment not found"
// @Router /comments/{id}/dislike [post]
func (h *Handler) DislikeComment(c *gin.Context) {
	h.react(c, false)
}

// @Summary Get the caller's reaction to a comment
// @Tags comment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID (UUID)"
// @Success 200 {object} http.Response "like, dislike or none"
// @Router /comments/{id}/reaction [get]
func (h *Handler) GetReaction(c *gin.Context) {
	commentID, err := httpHandler.UUIDParam(c, "id")
	if err != nil {
		h.response.ValidationErrorResponse(c, "id", "Invalid comment ID format")
		return
	}

	userID, ok := httpHandler.UserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	reaction, err := h.service.GetReaction(c.Request.Context(), commentID, userID)
	if err != nil {
		h.response.HandleServiceError(c, err, "Failed to load reaction")
		return
	}

	h.response.SuccessResponse(c, gin.H{"reaction": reaction}, "Reaction retrieved successfully")
}
