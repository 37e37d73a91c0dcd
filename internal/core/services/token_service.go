package services

import (
	"context"
	"fmt"
	"time"

	"github.com/skywalker/milestone_backend/internal/apperrors"
	"github.com/skywalker/milestone_backend/internal/core/domain"
	portssvc "github.com/skywalker/milestone_backend/internal/core/ports/services"
	"github.com/skywalker/milestone_backend/internal/platform/config"
	"github.com/skywalker/milestone_backend/internal/utils"
)

// tokenService implements TokenSvcFacade over the process-wide signing
// configuration. The secret and validity window are loaded once at startup
// and never rotated at runtime.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiry)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// VerifyAccessToken validates the token and returns the subject user ID.
// Any signature mismatch, malformed structure, or past expiry is rejected.
func (s *tokenService) VerifyAccessToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", apperrors.ErrUnauthorized)
	}
	return claims.Subject, nil
}
