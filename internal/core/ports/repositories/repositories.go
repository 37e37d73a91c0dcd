package repositories

import (
	"context"

	"github.com/skywalker/milestone_backend/internal/core/domain"
)

// UserRepository defines persistence operations for Users.
//
// CreateUser must surface a unique-email violation as apperrors.ErrDuplicate
// so callers can resolve concurrent first-login races by re-reading instead
// of failing the request.
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
}

// MilestoneRepository defines persistence operations for Milestones. Every
// lookup and mutation is keyed by the owning user in addition to the
// milestone ID.
type MilestoneRepository interface {
	SaveMilestone(ctx context.Context, milestone domain.Milestone) error
	FindMilestoneByIDAndUser(ctx context.Context, milestoneID, userID string) (*domain.Milestone, error)
	FindMilestonesByUser(ctx context.Context, userID string) ([]domain.Milestone, error)
	UpdateMilestone(ctx context.Context, milestone domain.Milestone) error
	DeleteMilestone(ctx context.Context, milestoneID, userID string) error
}

// RepositoryProvider bundles all repositories for service wiring.
type RepositoryProvider struct {
	UserRepo      UserRepository
	MilestoneRepo MilestoneRepository
}
