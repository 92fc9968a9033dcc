package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/meridiangallery/backend/internal/config"
	"github.com/meridiangallery/backend/internal/services"
)

const stateCookie = "oauth_state"

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// GoogleLogin redirects to the Google consent page
// GET /auth/google/login
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookie, state, 600, "/", "", h.cfg.Env == "production", true)
	c.Redirect(http.StatusFound, h.authService.LoginURL(state))
}

// GoogleCallback completes the sign-in. The email from Google must be on
// the allow-list; everyone else is denied.
// GET /auth/google/callback
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", h.cfg.Env == "production", true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	email, err := h.authService.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("OAuth code exchange failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-in failed"})
		return
	}

	if !h.authService.IsAuthorized(email) {
		log.Warn().Str("email", email).Msg("Sign-in attempt by unauthorized email")
		c.JSON(http.StatusForbidden, gin.H{"error": "This account is not authorized"})
		return
	}

	token, err := h.authService.IssueSession(email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-in failed"})
		return
	}

	c.Redirect(http.StatusFound, h.cfg.FrontendURL+"/portal?token="+token)
}

// Me returns the signed-in session's email
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"email": c.GetString("email")})
}
