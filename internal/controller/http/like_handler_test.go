package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"chilaq/internal/entity"
	"chilaq/internal/usecase"
	"chilaq/pkg/logger"
	"chilaq/pkg/middleware"
)

// MockLikeUseCase is a mock implementation of usecase.LikeUseCase
type MockLikeUseCase struct {
	mock.Mock
}

func (m *MockLikeUseCase) LikePost(ctx context.Context, postID int64, identityToken string) (*entity.LikeResult, error) {
	args := m.Called(postID, identityToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LikeResult), args.Error(1)
}

func (m *MockLikeUseCase) GetLikes(ctx context.Context, postID int64) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeUseCase) HasLiked(postID int64, identityToken string) (bool, error) {
	args := m.Called(postID, identityToken)
	return args.Bool(0), args.Error(1)
}

var _ usecase.LikeUseCase = (*MockLikeUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withIdentity(identity string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, identity)
		handler(c)
	}
}

func TestLikePost_FirstLike(t *testing.T) {
	mockUseCase := new(MockLikeUseCase)
	handler := NewLikeHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:post_id/like", withIdentity("token-a", handler.LikePost))

	mockUseCase.On("LikePost", int64(42), "token-a").
		Return(&entity.LikeResult{Liked: true, Likes: 1}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/42/like", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["liked"])
	assert.Equal(t, float64(1), response["likes"])
	assert.NotContains(t, response, "reason")

	mockUseCase.AssertExpectations(t)
}

func TestLikePost_RateLimited(t *testing.T) {
	mockUseCase := new(MockLikeUseCase)
	handler := NewLikeHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:post_id/like", withIdentity("token-a", handler.LikePost))

	mockUseCase.On("LikePost", int64(42), "token-a").
		Return(&entity.LikeResult{Liked: false, Likes: 3, Reason: entity.ReasonRateLimited}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/42/like", nil)

	router.ServeHTTP(w, req)

	// Soft decline, not an error status
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, false, response["liked"])
	assert.Equal(t, "rate_limited", response["reason"])
	assert.Equal(t, float64(3), response["likes"])
}

func TestLikePost_InvalidIdentity(t *testing.T) {
	mockUseCase := new(MockLikeUseCase)
	handler := NewLikeHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	// No identity middleware ran, so the context carries no identity
	router.POST("/posts/:post_id/like", handler.LikePost)

	mockUseCase.On("LikePost", int64(42), "").
		Return(nil, entity.ErrInvalidIdentity)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/42/like", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, false, response["liked"])
	assert.Equal(t, "invalid_identity", response["reason"])
}

func TestLikePost_PostNotFound(t *testing.T) {
	mockUseCase := new(MockLikeUseCase)
	handler := NewLikeHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:post_id/like", withIdentity("token-a", handler.LikePost))

	mockUseCase.On("LikePost", int64(999), "token-a").
		Return(nil, entity.ErrPostNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/999/like", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikePost_BadPostID(t *testing.T) {
	mockUseCase := new(MockLikeUseCase)
	handler := NewLikeHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:post_id/like", withIdentity("token-a", handler.LikePost))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/not-a-number/like", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "LikePost", mock.Anything, mock.Anything)
}

func TestGetLikes(t *testing.T) {
	mockUseCase := new(MockLikeUseCase)
	handler := NewLikeHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:post_id/likes", handler.GetLikes)

	mockUseCase.On("GetLikes", int64(42)).Return(int64(2), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/42/likes", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(42), response["post_id"])
	assert.Equal(t, float64(2), response["likes"])
}

func TestGetLikes_NotFound(t *testing.T) {
	mockUseCase := new(MockLikeUseCase)
	handler := NewLikeHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:post_id/likes", handler.GetLikes)

	mockUseCase.On("GetLikes", int64(999)).Return(int64(0), entity.ErrPostNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/999/likes", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHasLiked(t *testing.T) {
	mockUseCase := new(MockLikeUseCase)
	handler := NewLikeHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:post_id/liked", withIdentity("token-a", handler.HasLiked))

	mockUseCase.On("HasLiked", int64(42), "token-a").Return(true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/42/liked", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["liked"])
}

func TestRedirectLegacyLike(t *testing.T) {
	router := setupTestRouter()
	router.POST("/p/:post_id/like", RedirectLegacyLike)
	router.POST("/api/posts/:post_id/like", RedirectLegacyLike)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/p/42/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPermanentRedirect, w.Code)
	assert.Equal(t, "/api/v1/posts/42/like", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/posts/42/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPermanentRedirect, w.Code)
	assert.Equal(t, "/api/v1/posts/42/like", w.Header().Get("Location"))
}

func TestRedirectLegacyLikes(t *testing.T) {
	router := setupTestRouter()
	router.GET("/posts/:post_id/likes", RedirectLegacyLikes)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/42/likes", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/api/v1/posts/42/likes", w.Header().Get("Location"))
}
