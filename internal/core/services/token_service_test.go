package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/skywalker/milestone_backend/internal/core/domain"
	"github.com/skywalker/milestone_backend/internal/core/services"
	"github.com/skywalker/milestone_backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig(expiry time.Duration) *config.Config {
	return &config.Config{
		JWTSecret: "test-secret-key-for-token-service",
		JWTExpiry: expiry,
		JWTIssuer: "milestone-backend-test",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := services.NewTokenService(testTokenConfig(time.Hour))
	user := &domain.User{UserID: "user-123", Email: "a@x.com"}

	token, expiry, err := svc.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	subject, err := svc.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := services.NewTokenService(testTokenConfig(-time.Minute))
	user := &domain.User{UserID: "user-123"}

	token, _, err := svc.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc := services.NewTokenService(testTokenConfig(time.Hour))
	user := &domain.User{UserID: "user-123"}

	token, _, err := svc.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)

	// Flip one character of the signature.
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err = svc.VerifyAccessToken(context.Background(), tampered)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := services.NewTokenService(testTokenConfig(time.Hour))
	user := &domain.User{UserID: "user-123"}

	token, _, err := issuer.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)

	other := testTokenConfig(time.Hour)
	other.JWTSecret = "a-completely-different-secret"
	verifier := services.NewTokenService(other)

	_, err = verifier.VerifyAccessToken(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	svc := services.NewTokenService(testTokenConfig(time.Hour))

	for _, tok := range []string{"", "garbage", strings.Repeat("a.b", 3)} {
		_, err := svc.VerifyAccessToken(context.Background(), tok)
		assert.Error(t, err, "token %q should be rejected", tok)
	}
}
