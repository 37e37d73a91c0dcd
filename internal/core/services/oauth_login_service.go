package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/skywalker/milestone_backend/internal/core/domain"
	portssvc "github.com/skywalker/milestone_backend/internal/core/ports/services"
	"github.com/skywalker/milestone_backend/internal/platform/config"
)

// oauthLoginService finishes a federated login: extract the canonical
// attribute tuple, reconcile it against the user store, issue a token, and
// build the frontend redirect URL. The browser is mid-redirect when this
// runs, so a missing email is reported through the redirect's error query
// parameter rather than an HTTP error body.
type oauthLoginService struct {
	cfg          *config.Config
	extractor    *providerAttributeExtractor
	userService  portssvc.UserReconcilerSvc
	tokenService portssvc.TokenSvcFacade
	logger       *slog.Logger
}

// NewOAuthLoginService creates a new instance of oauthLoginService.
func NewOAuthLoginService(
	cfg *config.Config,
	userService portssvc.UserReconcilerSvc,
	tokenService portssvc.TokenSvcFacade,
	logger *slog.Logger,
) portssvc.OAuthLoginSvcFacade {
	return &oauthLoginService{
		cfg:          cfg,
		extractor:    newProviderAttributeExtractor(logger, cfg.ProviderTimeout),
		userService:  userService,
		tokenService: tokenService,
		logger:       logger,
	}
}

// CompleteLogin has two terminal outcomes: a success redirect carrying
// token+provider, or an error redirect when no email could be resolved.
// Persistence and signing failures propagate to the handler as fatal.
func (s *oauthLoginService) CompleteLogin(ctx context.Context, provider string, attrs map[string]any, accessToken string) (string, error) {
	info := s.extractor.Extract(ctx, provider, attrs, accessToken)
	if !info.HasEmail() {
		s.logger.ErrorContext(ctx, "Email not found from OAuth2 provider", slog.String("provider", provider))
		return s.errorRedirect("Email not found"), nil
	}

	authProvider, ok := domain.AuthProviderFromName(provider)
	if !ok {
		s.logger.ErrorContext(ctx, "Unknown OAuth2 provider", slog.String("provider", provider))
		return s.errorRedirect("Unsupported provider"), nil
	}

	user, err := s.userService.ReconcileOAuthUser(ctx, info, authProvider)
	if err != nil {
		return "", fmt.Errorf("failed to reconcile %s login: %w", provider, err)
	}

	token, _, err := s.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return "", fmt.Errorf("failed to issue token for %s login: %w", provider, err)
	}

	s.logger.InfoContext(ctx, "OAuth2 login successful",
		slog.String("provider", provider),
		slog.String("user_id", user.UserID),
	)

	// Only token and provider travel in the URL; the frontend fetches the
	// user profile with the token afterwards.
	return s.redirectWith(url.Values{"token": {token}, "provider": {provider}}), nil
}

func (s *oauthLoginService) errorRedirect(message string) string {
	return s.redirectWith(url.Values{"error": {message}})
}

func (s *oauthLoginService) redirectWith(params url.Values) string {
	return s.cfg.FrontendRedirectURL + "?" + params.Encode()
}
