package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/consensuslabs/reelstream/backend/internal/errors"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewResponseHandler(logger.NewNopLogger())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler.HandleServiceError(c, err, "Something failed")

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		field   string
	}{
		{"not found", apperrors.NotFound("comment not found"), http.StatusNotFound, CodeNotFound, "comment not found", ""},
		{"wrapped forbidden", fmt.Errorf("delete: %w", apperrors.Forbidden("not yours")), http.StatusForbidden, CodeForbidden, "not yours", ""},
		{"conflict", apperrors.Conflict("email already registered"), http.StatusConflict, CodeConflict, "email already registered", ""},
		{"unauthorized", apperrors.Unauthorized("bad token"), http.StatusUnauthorized, CodeUnauthorized, "bad token", ""},
		{"field validation", apperrors.NewValidationError("title", "title is required"), http.StatusBadRequest, CodeValidation, "title is required", "title"},
		{"processing", apperrors.NewProcessingError("could not read duration", errors.New("exit 1")), http.StatusBadRequest, CodeProcessing, "could not read duration", ""},
		{"storage", apperrors.NewStorageError("failed to store video", errors.New("disk full")), http.StatusInternalServerError, CodeStorage, "failed to store video", ""},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, CodeInternal, "Something failed", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := serveError(t, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
			assert.Equal(t, tt.field, body.Error.Field)
		})
	}
}

func TestSuccessAndCreatedResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewResponseHandler(logger.NewNopLogger())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	handler.CreatedResponse(c, map[string]string{"id": "1"}, "created")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"created","data":{"id":"1"}}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	handler.SuccessResponse(c, nil, "ok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"ok"}`, w.Body.String())
}

func TestContextHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=2&size=500", nil)

	_, ok := UserID(c)
	assert.False(t, ok)

	id := uuid.New()
	SetUserID(c, id)
	got, ok := UserID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	params := PageParams(c)
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, 100, params.Size)
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	nop := logger.NewNopLogger()
	router := gin.New()
	router.Use(RecoveryMiddleware(NewResponseHandler(nop), nop))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
