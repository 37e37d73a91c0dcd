package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/skywalker/milestone_backend/internal/apperrors"
	portssvc "github.com/skywalker/milestone_backend/internal/core/ports/services"
	"github.com/skywalker/milestone_backend/internal/platform/config"
	"github.com/skywalker/milestone_backend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const githubUserURL = "https://api.github.com/user"

// oauthService implements OAuthSvcFacade with one oauth2.Config per supported
// provider. The provider set is closed; callers asking for anything else get
// apperrors.ErrNotFound.
type oauthService struct {
	cfg     *config.Config
	configs map[string]*oauth2.Config
}

// NewOAuthService creates a new instance of oauthService.
func NewOAuthService(cfg *config.Config) portssvc.OAuthSvcFacade {
	callback := func(provider string) string {
		return cfg.OAuthCallbackBaseURL + "/api/oauth2/callback/" + provider
	}
	return &oauthService{
		cfg: cfg,
		configs: map[string]*oauth2.Config{
			"google": {
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  callback("google"),
				Scopes:       []string{"openid", "email", "profile"},
				Endpoint:     google.Endpoint,
			},
			"github": {
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				RedirectURL:  callback("github"),
				Scopes:       []string{"read:user", "user:email"},
				Endpoint:     github.Endpoint,
			},
		},
	}
}

// GenerateStateString creates a secure random CSRF token for the OAuth flow.
func (s *oauthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// LoginURL returns the provider's authorization URL for the given state.
func (s *oauthService) LoginURL(ctx context.Context, provider string, state string) (string, error) {
	conf, ok := s.configs[provider]
	if !ok {
		return "", apperrors.NewNotFoundError("Unknown OAuth provider: " + provider)
	}
	return conf.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// ExchangeCode trades the authorization code for the provider's raw user
// attributes plus the access token used to retrieve them. The attributes stay
// loosely typed here; the extractor converts them at the boundary.
func (s *oauthService) ExchangeCode(ctx context.Context, provider string, code string) (map[string]any, string, error) {
	conf, ok := s.configs[provider]
	if !ok {
		return nil, "", apperrors.NewNotFoundError("Unknown OAuth provider: " + provider)
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, "", apperrors.NewAppError(http.StatusBadGateway,
			"Failed to authenticate with provider",
			fmt.Errorf("failed to exchange oauth code with %s: %w", provider, err))
	}

	var attrs map[string]any
	switch provider {
	case "google":
		attrs, err = s.googleAttributes(ctx, token)
	case "github":
		attrs, err = s.githubAttributes(ctx, conf, token)
	}
	if err != nil {
		return nil, "", apperrors.NewAppError(http.StatusBadGateway,
			"Failed to authenticate with provider", err)
	}
	return attrs, token.AccessToken, nil
}

// googleAttributes validates Google's ID token and returns its claims. The
// claims carry email, name, sub, and picture, already verified against our
// client ID.
func (s *oauthService) googleAttributes(ctx context.Context, token *oauth2.Token) (map[string]any, error) {
	idTokenString, ok := token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return nil, errors.New("id token missing from Google token response")
	}
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	claims := payload.Claims
	if claims == nil {
		claims = map[string]any{}
	}
	// Subject is authoritative even when the claim map omits it.
	claims["sub"] = payload.Subject
	return claims, nil
}

// githubAttributes calls GitHub's /user API with the freshly exchanged token.
func (s *oauthService) githubAttributes(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) (map[string]any, error) {
	client := conf.Client(ctx, token)

	resp, err := client.Get(githubUserURL)
	if err != nil {
		return nil, fmt.Errorf("failed to call GitHub /user API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github /user API returned status %d", resp.StatusCode)
	}

	var attrs map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		return nil, fmt.Errorf("failed to decode GitHub /user response: %w", err)
	}
	return attrs, nil
}
