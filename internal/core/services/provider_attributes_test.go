package services

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtractor(t *testing.T) *providerAttributeExtractor {
	t.Helper()
	return newProviderAttributeExtractor(slog.Default(), time.Second)
}

func TestGoogleAttributeMapping(t *testing.T) {
	e := testExtractor(t)

	info := e.Extract(context.Background(), "google", map[string]any{
		"email":   "jane@example.com",
		"name":    "Jane Doe",
		"sub":     "g-123",
		"picture": "https://example.com/jane.png",
	}, "")

	assert.Equal(t, "jane@example.com", info.Email)
	assert.Equal(t, "Jane Doe", info.Name)
	assert.Equal(t, "g-123", info.ProviderID)
	assert.Equal(t, "https://example.com/jane.png", info.ImageURL)
}

func TestGitHubAttributeMapping(t *testing.T) {
	e := testExtractor(t)

	info := e.Extract(context.Background(), "github", map[string]any{
		"email":      "dev@example.com",
		"name":       "Dev Person",
		"id":         float64(98765),
		"avatar_url": "https://avatars.example.com/u/98765",
	}, "")

	assert.Equal(t, "dev@example.com", info.Email)
	assert.Equal(t, "Dev Person", info.Name)
	assert.Equal(t, "98765", info.ProviderID)
	assert.Equal(t, "https://avatars.example.com/u/98765", info.ImageURL)
}

func TestGitHubNameFallsBackToLogin(t *testing.T) {
	e := testExtractor(t)

	info := e.Extract(context.Background(), "github", map[string]any{
		"email": "dev@example.com",
		"login": "octocat",
		"id":    float64(1),
	}, "")

	assert.Equal(t, "octocat", info.Name)
}

func TestUnknownProviderYieldsNothing(t *testing.T) {
	e := testExtractor(t)

	info := e.Extract(context.Background(), "gitlab", map[string]any{
		"email": "dev@example.com",
		"name":  "Dev Person",
	}, "token")

	assert.False(t, info.HasEmail())
	assert.Empty(t, info.Name)
	assert.Empty(t, info.ProviderID)
	assert.Empty(t, info.ImageURL)
}

func TestGitHubSecondaryEmailFetch(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"email":"a@x","primary":false,"verified":true},
			{"email":"b@x","primary":true,"verified":true}
		]`))
	}))
	defer srv.Close()

	mapper := &githubAttributeMapper{
		emails: &githubEmailClient{client: srv.Client(), baseURL: srv.URL},
		logger: slog.Default(),
	}

	info := mapper.UserInfo(context.Background(), map[string]any{
		"login": "octocat",
		"id":    float64(1),
	}, "gh-access-token")

	assert.Equal(t, "b@x", info.Email)
	assert.Equal(t, "Bearer gh-access-token", gotAuth)
}

func TestGitHubSecondaryEmailFetchSkipsUnverified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"email":"a@x","primary":true,"verified":false},
			{"email":"b@x","primary":false,"verified":true}
		]`))
	}))
	defer srv.Close()

	client := &githubEmailClient{client: srv.Client(), baseURL: srv.URL}
	_, err := client.PrimaryVerifiedEmail(context.Background(), "tok")
	assert.Error(t, err)
}

func TestGitHubEmailFetchFailureDegradesToNoEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	mapper := &githubAttributeMapper{
		emails: &githubEmailClient{client: srv.Client(), baseURL: srv.URL},
		logger: slog.Default(),
	}

	info := mapper.UserInfo(context.Background(), map[string]any{
		"login": "octocat",
		"id":    float64(1),
	}, "tok")

	assert.False(t, info.HasEmail())
	assert.Equal(t, "octocat", info.Name)
}

func TestGitHubEmailFetchTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := &githubEmailClient{
		client:  &http.Client{Timeout: 20 * time.Millisecond},
		baseURL: srv.URL,
	}

	start := time.Now()
	_, err := client.PrimaryVerifiedEmail(context.Background(), "tok")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestStringifyID(t *testing.T) {
	assert.Equal(t, "42", stringifyID(float64(42)))
	assert.Equal(t, "42", stringifyID(int64(42)))
	assert.Equal(t, "abc", stringifyID("abc"))
	assert.Equal(t, "", stringifyID(nil))
}
