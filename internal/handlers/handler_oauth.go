package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/skywalker/milestone_backend/internal/core/ports/services"
	"github.com/skywalker/milestone_backend/internal/middleware"
)

const oauthStateCookie = "oauth_state"

// OAuthHandler drives the browser half of the OAuth2 Authorization Code flow
// for all supported providers.
type OAuthHandler struct {
	oauthService portssvc.OAuthSvcFacade
	loginService portssvc.OAuthLoginSvcFacade
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(os portssvc.OAuthSvcFacade, ls portssvc.OAuthLoginSvcFacade) *OAuthHandler {
	return &OAuthHandler{
		oauthService: os,
		loginService: ls,
	}
}

// registerOAuthRoutes sets up the provider authorize/callback routes.
func registerOAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewOAuthHandler(services.OAuth, services.OAuthLogin)

	oauth := r.Group("/api/oauth2")
	{
		oauth.GET("/authorize/:provider", h.Authorize)
		oauth.GET("/callback/:provider", h.Callback)
	}
}

// Authorize godoc
// @Summary Start an OAuth2 login
// @Description Redirects the browser to the provider's consent screen.
// @Tags oauth
// @Param provider path string true "Provider name (google or github)"
// @Success 307
// @Failure 404 {object} ErrorResponse "Unknown provider"
// @Router /api/oauth2/authorize/{provider} [get]
func (h *OAuthHandler) Authorize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	provider := c.Param("provider")

	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to start login")
		return
	}

	loginURL, err := h.oauthService.LoginURL(c.Request.Context(), provider, state)
	if err != nil {
		respondError(c, logger, err, "Failed to start login")
		return
	}

	// The state round-trips through a short-lived cookie and is checked on
	// callback to block CSRF.
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, loginURL)
}

// Callback godoc
// @Summary Finish an OAuth2 login
// @Description Handles the provider redirect, then redirects the browser to the frontend with either a token or an error query parameter.
// @Tags oauth
// @Param provider path string true "Provider name (google or github)"
// @Param code query string true "Authorization code"
// @Param state query string true "CSRF state"
// @Success 307
// @Failure 400 {object} ErrorResponse
// @Router /api/oauth2/callback/{provider} [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)
	provider := c.Param("provider")

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch", slog.String("provider", provider))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	attrs, accessToken, err := h.oauthService.ExchangeCode(ctx, provider, code)
	if err != nil {
		respondError(c, logger.With(slog.String("provider", provider)), err, "Failed to authenticate with provider")
		return
	}

	redirectURL, err := h.loginService.CompleteLogin(ctx, provider, attrs, accessToken)
	if err != nil {
		respondError(c, logger.With(slog.String("provider", provider)), err, "Failed to complete login")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
