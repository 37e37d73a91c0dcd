package services

import (
	"context"

	"github.com/skywalker/milestone_backend/internal/core/domain"
	"github.com/skywalker/milestone_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserAuthSvc defines operations for local (password) authentication.
type UserAuthSvc interface {
	// RegisterUser creates a LOCAL user from a signup request. Returns
	// apperrors.ErrDuplicate if the email is already taken.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// AuthenticateUser verifies email+password. It returns
	// apperrors.ErrUnauthorized for an unknown email or wrong password,
	// without distinguishing which.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserReconcilerSvc unifies federated identities with the local account store.
type UserReconcilerSvc interface {
	// ReconcileOAuthUser finds, creates, or upgrades the user record for a
	// federated login: unseen email creates a new user; an existing LOCAL
	// user is upgraded to the federated provider exactly once; an already
	// federated user is returned unchanged.
	ReconcileOAuthUser(ctx context.Context, info domain.ProviderUserInfo, provider domain.AuthProvider) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
	UserReconcilerSvc
}
