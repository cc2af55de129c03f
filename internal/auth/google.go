// Package auth exposes the one-time Google authorization pair: a redirect
// to the consent screen and the callback that exchanges the code for the
// long-lived refresh token. The scheduling pipeline only consumes the
// resulting refresh token from configuration; it never runs this flow
// itself.
package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/webinar-wrapper/backend/config"
	"github.com/webinar-wrapper/backend/internal/meeting"
	"github.com/webinar-wrapper/backend/pkg/response"
)

// Handler handles the Google OAuth endpoints.
type Handler struct {
	cfg    config.GoogleConfig
	logger *zap.Logger
}

// NewHandler creates a Google auth handler.
func NewHandler(cfg config.GoogleConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{cfg: cfg, logger: logger}
}

// Authorize handles GET /api/auth/google: redirects to the Google consent
// screen requesting offline calendar access. prompt=consent forces a fresh
// consent so a refresh token is always issued.
func (h *Handler) Authorize(c *gin.Context) {
	if !h.cfg.Configured() {
		response.BadRequest(c, "Google OAuth credentials not configured. Please set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
		return
	}
	url := meeting.OAuthConfig(h.cfg).AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// Callback handles GET /api/auth/google/callback: exchanges the one-time
// code and renders a page showing the refresh token to copy into the
// environment.
func (h *Handler) Callback(c *gin.Context) {
	if oauthErr := c.Query("error"); oauthErr != "" {
		response.BadRequest(c, "OAuth error: "+oauthErr)
		return
	}
	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "No authorization code received")
		return
	}

	token, err := meeting.OAuthConfig(h.cfg).Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("oauth code exchange failed", zap.Error(err))
		response.Internal(c, "Failed to process OAuth callback")
		return
	}

	refreshToken := token.RefreshToken
	if refreshToken == "" {
		refreshToken = "No refresh token issued - try again (consent may have been reused)"
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Google OAuth Success</title></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 50px auto;">
  <h2>Google authorization successful</h2>
  <p>Calendar access has been granted. Add the refresh token to your environment and restart the server:</p>
  <pre style="background: #f5f5f5; padding: 10px; word-break: break-all; white-space: pre-wrap;">GOOGLE_REFRESH_TOKEN=%s</pre>
  <p>Then schedule Google Meet webinars via POST /api/schedule-google.</p>
</body>
</html>`, refreshToken)))
}
