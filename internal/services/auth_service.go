package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/meridiangallery/backend/internal/config"
	"github.com/meridiangallery/backend/pkg/jwt"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// AuthService handles the Google OAuth sign-in flow for the portal.
// Access is deny-by-default: only emails on the configured allow-list get
// a session token.
type AuthService struct {
	cfg   *config.Config
	oauth *oauth2.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// LoginURL returns the Google consent page URL for the given CSRF state.
func (s *AuthService) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// ExchangeCode trades the OAuth callback code for the signed-in user's
// email address.
func (s *AuthService) ExchangeCode(ctx context.Context, code string) (string, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange OAuth code: %w", err)
	}

	resp, err := s.oauth.Client(ctx, token).Get(userinfoEndpoint)
	if err != nil {
		return "", fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.Email == "" {
		return "", fmt.Errorf("userinfo response contained no email")
	}
	return info.Email, nil
}

// IsAuthorized reports whether the email is on the portal allow-list.
func (s *AuthService) IsAuthorized(email string) bool {
	for _, allowed := range s.cfg.AuthorizedEmails {
		if strings.EqualFold(strings.TrimSpace(allowed), strings.TrimSpace(email)) {
			return true
		}
	}
	return false
}

// IssueSession creates a signed session token for an authorized email.
func (s *AuthService) IssueSession(email string) (string, error) {
	return jwt.GenerateToken(email, s.cfg.JWTSecret, s.cfg.SessionDuration)
}

// ValidateSession verifies a session token and returns the email it was
// issued for.
func (s *AuthService) ValidateSession(token string) (string, error) {
	claims, err := jwt.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}
