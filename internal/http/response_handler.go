package http

import (
	stderrors "errors"
	"net/http"

	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
	"github.com/gin-gonic/gin"
)

// responseHandler implements the ResponseHandler interface
type responseHandler struct {
	logger Logger
}

// NewResponseHandler creates a new instance of ResponseHandler
func NewResponseHandler(logger Logger) ResponseHandler {
	return &responseHandler{
		logger: logger,
	}
}

// SuccessResponse sends a success response with optional data and message
func (h *responseHandler) SuccessResponse(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreatedResponse sends a 201 response for newly created resources
func (h *responseHandler) CreatedResponse(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse sends an error response with status code, error code, and message
func (h *responseHandler) ErrorResponse(c *gin.Context, status int, code, message string, err error) {
	if err != nil {
		h.logger.LogError(err, message)
	}

	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

// ValidationErrorResponse sends a validation error response
func (h *responseHandler) ValidationErrorResponse(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error: &Error{
			Code:    CodeValidation,
			Message: message,
			Field:   field,
		},
	})
}

// NotFoundResponse sends a not found error response
func (h *responseHandler) NotFoundResponse(c *gin.Context, message string) {
	h.ErrorResponse(c, http.StatusNotFound, CodeNotFound, message, nil)
}

// UnauthorizedResponse sends an unauthorized error response
func (h *responseHandler) UnauthorizedResponse(c *gin.Context, message string) {
	h.ErrorResponse(c, http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

// ForbiddenResponse sends a forbidden error response
func (h *responseHandler) ForbiddenResponse(c *gin.Context, message string) {
	h.ErrorResponse(c, http.StatusForbidden, CodeForbidden, message, nil)
}

// ConflictResponse sends a conflict error response
func (h *responseHandler) ConflictResponse(c *gin.Context, message string) {
	h.ErrorResponse(c, http.StatusConflict, CodeConflict, message, nil)
}

// InternalErrorResponse sends an internal server error response
func (h *responseHandler) InternalErrorResponse(c *gin.Context, message string, err error) {
	h.ErrorResponse(c, http.StatusInternalServerError, CodeInternal, message, err)
}

func (h *responseHandler) HandleServiceError(c *gin.Context, err error, fallback string) {
	var validationErr *apperrors.ValidationError
	if stderrors.As(err, &validationErr) {
		h.ValidationErrorResponse(c, validationErr.Field, validationErr.Message)
		return
	}

	var storageErr *apperrors.StorageError
	if stderrors.As(err, &storageErr) {
		h.ErrorResponse(c, http.StatusInternalServerError, CodeStorage, storageErr.Message, err)
		return
	}

	var processingErr *apperrors.ProcessingError
	if stderrors.As(err, &processingErr) {
		h.ErrorResponse(c, http.StatusBadRequest, CodeProcessing, processingErr.Message, err)
		return
	}

	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		h.NotFoundResponse(c, err.Error())
	case apperrors.KindForbidden:
		h.ForbiddenResponse(c, err.Error())
	case apperrors.KindUnauthorized:
		h.UnauthorizedResponse(c, err.Error())
	case apperrors.KindConflict:
		h.ConflictResponse(c, err.Error())
	case apperrors.KindValidation:
		h.ValidationErrorResponse(c, "", err.Error())
	default:
		h.InternalErrorResponse(c, fallback, err)
	}
}
