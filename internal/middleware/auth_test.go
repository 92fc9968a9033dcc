package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridiangallery/backend/internal/config"
	"github.com/meridiangallery/backend/internal/services"
)

func newAuthRouter(authService *services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(authService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("email")})
	})
	return r
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	authService := services.NewAuthService(&config.Config{JWTSecret: "s", SessionDuration: time.Hour})
	r := newAuthRouter(authService)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsBadToken(t *testing.T) {
	authService := services.NewAuthService(&config.Config{JWTSecret: "s", SessionDuration: time.Hour})
	r := newAuthRouter(authService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsValidSession(t *testing.T) {
	authService := services.NewAuthService(&config.Config{JWTSecret: "s", SessionDuration: time.Hour})
	token, err := authService.IssueSession("artist@example.com")
	require.NoError(t, err)

	r := newAuthRouter(authService)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "artist@example.com")
}
