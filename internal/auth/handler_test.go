package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpHandler "github.com/consensuslabs/reelstream/backend/internal/http"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/consensuslabs/reelstream/backend/internal/user"
	"github.com/consensuslabs/reelstream/backend/internal/verification"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) SendCode(ctx context.Context, req SendCodeRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthService) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	args := m.Called(ctx, req)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	args := m.Called(ctx, req)
	if r, ok := args.Get(0).(*LoginResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) ValidateToken(token string) (*TokenClaims, error) {
	args := m.Called(token)
	if c, ok := args.Get(0).(*TokenClaims); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func setupAuthRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(svc, httpHandler.NewResponseHandler(logger.NewNopLogger())).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(mockAuthService)
		req := validRegister()
		svc.On("Register", mock.Anything, req).Return(&user.User{ID: uuid.New(), Username: "alice", Password: "hash"}, nil)

		w := postJSON(setupAuthRouter(svc), "/api/v1/auth/register", req)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "hash")
	})

	t.Run("Conflict", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, user.ErrEmailTaken)

		w := postJSON(setupAuthRouter(svc), "/api/v1/auth/register", validRegister())
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Bad Code", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, verification.ErrCodeExpired)

		w := postJSON(setupAuthRouter(svc), "/api/v1/auth/register", validRegister())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		svc := new(mockAuthService)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupAuthRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestLoginHandler(t *testing.T) {
	svc := new(mockAuthService)
	ok := LoginRequest{Identifier: "alice", Password: "secret1"}
	bad := LoginRequest{Identifier: "alice", Password: "nope123"}
	svc.On("Login", mock.Anything, ok).Return(&LoginResponse{AccessToken: "tok", TokenType: "bearer", ExpiresIn: 1800}, nil)
	svc.On("Login", mock.Anything, bad).Return(nil, ErrInvalidCredentials)
	router := setupAuthRouter(svc)

	w := postJSON(router, "/api/v1/auth/login", ok)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "tok", body.Data.AccessToken)
	assert.Equal(t, "bearer", body.Data.TokenType)

	w = postJSON(router, "/api/v1/auth/login", bad)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSendCodeHandler(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("SendCode", mock.Anything, SendCodeRequest{Email: "a@example.com"}).Return(nil)

	w := postJSON(setupAuthRouter(svc), "/api/v1/auth/code", SendCodeRequest{Email: "a@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
