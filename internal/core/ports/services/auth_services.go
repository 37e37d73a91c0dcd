package services

import (
	"context"
	"time"

	"github.com/skywalker/milestone_backend/internal/core/domain"
)

// TokenSvcFacade defines the interface for bearer token management.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed token carrying the user's stable
	// identity and an expiry of issue-time plus the configured window.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// VerifyAccessToken checks signature and expiry and returns the subject
	// user ID. It fails closed: any malformed, tampered, or expired token
	// yields an error and never a partial identity.
	VerifyAccessToken(ctx context.Context, tokenString string) (string, error)
}

// OAuthSvcFacade defines the provider-facing half of the OAuth2 flow: URLs,
// code exchange, and raw attribute retrieval.
type OAuthSvcFacade interface {
	// GenerateStateString creates a secure random CSRF token for the flow.
	GenerateStateString(ctx context.Context) (string, error)

	// LoginURL returns the provider authorization URL for the given state.
	LoginURL(ctx context.Context, provider string, state string) (string, error)

	// ExchangeCode trades the callback code for the provider's raw user
	// attributes plus the access token used to fetch them.
	ExchangeCode(ctx context.Context, provider string, code string) (map[string]any, string, error)
}

// OAuthLoginSvcFacade finishes a federated login after the provider callback.
type OAuthLoginSvcFacade interface {
	// CompleteLogin runs extraction, reconciliation, and token issuance, and
	// returns the frontend redirect URL. A login that cannot resolve an email
	// still returns a redirect URL (carrying an error query parameter) and a
	// nil error; only persistence or signing failures return an error.
	CompleteLogin(ctx context.Context, provider string, attrs map[string]any, accessToken string) (string, error)
}
