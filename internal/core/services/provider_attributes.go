package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/skywalker/milestone_backend/internal/core/domain"
)

// attributeMapper normalizes one provider's raw profile attributes into the
// canonical tuple. Implementations form a closed set; supporting a new
// provider means adding a mapper, not editing a shared function.
type attributeMapper interface {
	UserInfo(ctx context.Context, attrs map[string]any, accessToken string) domain.ProviderUserInfo
}

// providerAttributeExtractor dispatches to the mapper registered for a
// provider name. Unknown providers resolve every field to absent.
type providerAttributeExtractor struct {
	mappers map[string]attributeMapper
}

func newProviderAttributeExtractor(logger *slog.Logger, timeout time.Duration) *providerAttributeExtractor {
	return &providerAttributeExtractor{
		mappers: map[string]attributeMapper{
			"google": &googleAttributeMapper{},
			"github": &githubAttributeMapper{
				emails: newGitHubEmailClient(timeout),
				logger: logger,
			},
		},
	}
}

// Extract converts a raw attribute map into the canonical tuple for the named
// provider. The access token is only consulted by mappers that need a
// secondary fetch (GitHub's email lookup).
func (e *providerAttributeExtractor) Extract(ctx context.Context, provider string, attrs map[string]any, accessToken string) domain.ProviderUserInfo {
	mapper, ok := e.mappers[provider]
	if !ok {
		return domain.ProviderUserInfo{}
	}
	return mapper.UserInfo(ctx, attrs, accessToken)
}

func stringAttr(attrs map[string]any, key string) string {
	v, _ := attrs[key].(string)
	return v
}

// googleAttributeMapper reads the claims of a validated Google ID token.
type googleAttributeMapper struct{}

func (m *googleAttributeMapper) UserInfo(ctx context.Context, attrs map[string]any, _ string) domain.ProviderUserInfo {
	return domain.ProviderUserInfo{
		Email:      stringAttr(attrs, "email"),
		Name:       stringAttr(attrs, "name"),
		ProviderID: stringAttr(attrs, "sub"),
		ImageURL:   stringAttr(attrs, "picture"),
	}
}

// githubAttributeMapper reads the GitHub /user payload. GitHub omits the
// email when the user hides it, in which case the authenticated email list is
// consulted for the primary verified address. A failed lookup degrades to "no
// email" rather than failing the login outright.
type githubAttributeMapper struct {
	emails githubEmailLister
	logger *slog.Logger
}

func (m *githubAttributeMapper) UserInfo(ctx context.Context, attrs map[string]any, accessToken string) domain.ProviderUserInfo {
	email := stringAttr(attrs, "email")
	if email == "" && accessToken != "" {
		fetched, err := m.emails.PrimaryVerifiedEmail(ctx, accessToken)
		if err != nil {
			m.logger.WarnContext(ctx, "GitHub email lookup failed", slog.String("error", err.Error()))
		} else {
			email = fetched
		}
	}

	name := stringAttr(attrs, "name")
	if name == "" {
		name = stringAttr(attrs, "login")
	}

	return domain.ProviderUserInfo{
		Email:      email,
		Name:       name,
		ProviderID: stringifyID(attrs["id"]),
		ImageURL:   stringAttr(attrs, "avatar_url"),
	}
}

// stringifyID renders GitHub's numeric user ID as a string. JSON decoding
// yields float64 for numbers; other shapes are covered for safety.
func stringifyID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	case json.Number:
		return id.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", id)
	}
}

// githubEmailLister fetches the authenticated user's primary verified email.
type githubEmailLister interface {
	PrimaryVerifiedEmail(ctx context.Context, accessToken string) (string, error)
}

const githubEmailsURL = "https://api.github.com/user/emails"

// githubEmailClient calls GitHub's "list my email addresses" endpoint with a
// bounded client. It holds no locks and no per-request state.
type githubEmailClient struct {
	client  *http.Client
	baseURL string
}

func newGitHubEmailClient(timeout time.Duration) *githubEmailClient {
	return &githubEmailClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: githubEmailsURL,
	}
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// PrimaryVerifiedEmail returns the first email marked both primary and
// verified, or an error if none exists or the call fails.
func (c *githubEmailClient) PrimaryVerifiedEmail(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build GitHub emails request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call GitHub emails endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github emails endpoint returned status %d", resp.StatusCode)
	}

	var emails []githubEmail
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", fmt.Errorf("failed to decode GitHub emails response: %w", err)
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", fmt.Errorf("no primary verified email on GitHub account")
}
