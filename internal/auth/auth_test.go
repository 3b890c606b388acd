package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService(string(hash), "test-secret", zap.NewNop())
}

func TestLoginAndVerify(t *testing.T) {
	svc := testService(t)

	token, err := svc.Login("letmein")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NoError(t, svc.Verify(token))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := testService(t)
	_, err := svc.Login("guess")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnconfigured(t *testing.T) {
	svc := NewService("", "", zap.NewNop())
	_, err := svc.Login("anything")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestVerifyRejectsGarbageAndForeignTokens(t *testing.T) {
	svc := testService(t)
	assert.Error(t, svc.Verify("not-a-token"))

	other := NewService("", "other-secret", zap.NewNop())
	hash, _ := bcrypt.GenerateFromPassword([]byte("x"), bcrypt.MinCost)
	other.passwordHash = hash
	foreign, err := other.Login("x")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Verify(foreign), ErrInvalidCredentials)
}

func guardedRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded", svc.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	NewHandler(svc, zap.NewNop()).RegisterRoutes(router)
	return router
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	router := guardedRouter(testService(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	svc := testService(t)
	token, err := svc.Login("letmein")
	require.NoError(t, err)

	router := guardedRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router := guardedRouter(testService(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"letmein"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
