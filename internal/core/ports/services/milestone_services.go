package services

import (
	"context"

	"github.com/skywalker/milestone_backend/internal/core/domain"
	"github.com/skywalker/milestone_backend/internal/dto"
)

// MilestoneSvcFacade defines milestone CRUD, always scoped to the requesting
// user. Lookups for another user's milestone return apperrors.ErrNotFound.
type MilestoneSvcFacade interface {
	CreateMilestone(ctx context.Context, userID string, req dto.CreateMilestoneRequest) (*domain.Milestone, error)
	GetMilestoneByID(ctx context.Context, userID string, milestoneID string) (*domain.Milestone, error)
	ListMilestones(ctx context.Context, userID string) ([]domain.Milestone, error)
	UpdateMilestone(ctx context.Context, userID string, milestoneID string, req dto.UpdateMilestoneRequest) (*domain.Milestone, error)
	DeleteMilestone(ctx context.Context, userID string, milestoneID string) error
}
