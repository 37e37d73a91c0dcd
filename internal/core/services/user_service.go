package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skywalker/milestone_backend/internal/apperrors"
	"github.com/skywalker/milestone_backend/internal/core/domain"
	portsrepo "github.com/skywalker/milestone_backend/internal/core/ports/repositories"
	portssvc "github.com/skywalker/milestone_backend/internal/core/ports/services"
	"github.com/skywalker/milestone_backend/internal/dto"
	"github.com/skywalker/milestone_backend/internal/utils"
)

// userService implements UserSvcFacade: local registration and login plus the
// reconciliation of federated identities into the user store.
type userService struct {
	userRepo portsrepo.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepository, logger *slog.Logger) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, logger: logger}
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// RegisterUser creates a LOCAL user with a bcrypt password hash. A taken
// email surfaces as apperrors.ErrDuplicate for the handler to report.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Email already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// AuthenticateUser verifies email+password. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

// ReconcileOAuthUser is the find-or-create-or-upgrade state machine for
// federated logins. Three terminal outcomes:
//   - unseen email: a new federated user is created;
//   - existing LOCAL user: upgraded in place to the federated provider,
//     exactly once;
//   - already federated user: returned unchanged, attributes untouched.
//
// Two concurrent first logins for the same email can both observe "absent";
// the losing insert hits the unique email constraint and is retried as a
// lookup-and-upgrade rather than surfaced to the user.
func (s *userService) ReconcileOAuthUser(ctx context.Context, info domain.ProviderUserInfo, provider domain.AuthProvider) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, info.Email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user for reconciliation: %w", err)
		}
		created, createErr := s.createOAuthUser(ctx, info, provider)
		if createErr == nil {
			return created, nil
		}
		if !errors.Is(createErr, apperrors.ErrDuplicate) {
			return nil, createErr
		}
		// Lost a concurrent create race; the row now exists.
		user, err = s.userRepo.FindUserByEmail(ctx, info.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read user after create conflict: %w", err)
		}
	}

	if !user.IsLocal() {
		// Repeat federated logins do not refresh name or image.
		return user, nil
	}

	user.AuthProvider = provider
	user.ProviderID = info.ProviderID
	if info.Name != "" {
		user.FirstName, user.LastName = splitName(info.Name)
	}
	if info.ImageURL != "" {
		user.ImageURL = info.ImageURL
	}
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to upgrade local user to %s: %w", provider, err)
	}

	s.logger.InfoContext(ctx, "Local account linked to federated provider",
		slog.String("user_id", user.UserID),
		slog.String("provider", string(provider)),
	)
	return user, nil
}

func (s *userService) createOAuthUser(ctx context.Context, info domain.ProviderUserInfo, provider domain.AuthProvider) (*domain.User, error) {
	first, last := splitName(info.Name)
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        info.Email,
		FirstName:    first,
		LastName:     last,
		AuthProvider: provider,
		ProviderID:   info.ProviderID,
		ImageURL:     info.ImageURL,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create federated user: %w", err)
	}

	s.logger.InfoContext(ctx, "Federated user created",
		slog.String("user_id", user.UserID),
		slog.String("provider", string(provider)),
	)
	return &user, nil
}

// splitName splits a provider full name on the first space. A single token
// becomes the first name with no last name.
func splitName(name string) (first, last string) {
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}
