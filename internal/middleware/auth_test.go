package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtsvc "floorcare/internal/pkg/jwt"
)

func newAuthRouter(jwt *jwtsvc.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwt), func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": c.GetString("role")})
	})
	return r
}

func TestAuth_MissingToken(t *testing.T) {
	jwt := jwtsvc.New("test-secret", time.Hour)
	r := newAuthRouter(jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	jwt := jwtsvc.New("test-secret", time.Hour)
	r := newAuthRouter(jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	jwt := jwtsvc.New("test-secret", time.Hour)
	other := jwtsvc.New("other-secret", time.Hour)
	r := newAuthRouter(jwt)

	token, err := other.GenerateToken(5, "user@example.com", "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_BearerHeader(t *testing.T) {
	jwt := jwtsvc.New("test-secret", time.Hour)
	r := newAuthRouter(jwt)

	token, err := jwt.GenerateToken(5, "user@example.com", "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":5`)
}

func TestAuth_TokenCookie(t *testing.T) {
	jwt := jwtsvc.New("test-secret", time.Hour)
	r := newAuthRouter(jwt)

	token, err := jwt.GenerateToken(9, "user@example.com", "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestAuth_ExpiredToken(t *testing.T) {
	jwt := jwtsvc.New("test-secret", -time.Minute)
	r := newAuthRouter(jwt)

	token, err := jwt.GenerateToken(5, "user@example.com", "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
