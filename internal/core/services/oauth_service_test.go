package services_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/skywalker/milestone_backend/internal/apperrors"
	"github.com/skywalker/milestone_backend/internal/core/services"
	"github.com/skywalker/milestone_backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oauthTestConfig() *config.Config {
	return &config.Config{
		GoogleClientID:       "google-client-id",
		GoogleClientSecret:   "google-secret",
		GitHubClientID:       "github-client-id",
		GitHubClientSecret:   "github-secret",
		OAuthCallbackBaseURL: "http://localhost:8080",
	}
}

func TestLoginURLCarriesStateAndCallback(t *testing.T) {
	svc := services.NewOAuthService(oauthTestConfig())

	loginURL, err := svc.LoginURL(context.Background(), "google", "state-abc")
	require.NoError(t, err)

	parsed, err := url.Parse(loginURL)
	require.NoError(t, err)
	assert.Equal(t, "state-abc", parsed.Query().Get("state"))
	assert.Equal(t, "google-client-id", parsed.Query().Get("client_id"))
	assert.Equal(t, "http://localhost:8080/api/oauth2/callback/google", parsed.Query().Get("redirect_uri"))
}

func TestLoginURLUnknownProvider(t *testing.T) {
	svc := services.NewOAuthService(oauthTestConfig())

	_, err := svc.LoginURL(context.Background(), "gitlab", "state-abc")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestGenerateStateStringIsUnique(t *testing.T) {
	svc := services.NewOAuthService(oauthTestConfig())

	a, err := svc.GenerateStateString(context.Background())
	require.NoError(t, err)
	b, err := svc.GenerateStateString(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
