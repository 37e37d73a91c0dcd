package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skywalker/milestone_backend/internal/apperrors"
	"github.com/skywalker/milestone_backend/internal/core/domain"
	portsrepo "github.com/skywalker/milestone_backend/internal/core/ports/repositories"
	portssvc "github.com/skywalker/milestone_backend/internal/core/ports/services"
	"github.com/skywalker/milestone_backend/internal/dto"
)

// milestoneService implements MilestoneSvcFacade. Every operation is scoped
// to the requesting user; a milestone owned by someone else behaves exactly
// like one that does not exist.
type milestoneService struct {
	milestoneRepo portsrepo.MilestoneRepository
}

// NewMilestoneService creates a new instance of milestoneService.
func NewMilestoneService(milestoneRepo portsrepo.MilestoneRepository) portssvc.MilestoneSvcFacade {
	return &milestoneService{milestoneRepo: milestoneRepo}
}

func (s *milestoneService) CreateMilestone(ctx context.Context, userID string, req dto.CreateMilestoneRequest) (*domain.Milestone, error) {
	milestone := domain.Milestone{
		MilestoneID: uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if req.AchieveDate != nil {
		achieveDate, err := dto.ParseDate(*req.AchieveDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid achieve date, expected yyyy-MM-dd")
		}
		milestone.AchieveDate = &achieveDate
	}

	if err := s.milestoneRepo.SaveMilestone(ctx, milestone); err != nil {
		return nil, fmt.Errorf("failed to save milestone: %w", err)
	}
	return &milestone, nil
}

func (s *milestoneService) GetMilestoneByID(ctx context.Context, userID string, milestoneID string) (*domain.Milestone, error) {
	milestone, err := s.milestoneRepo.FindMilestoneByIDAndUser(ctx, milestoneID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}
	return milestone, nil
}

func (s *milestoneService) ListMilestones(ctx context.Context, userID string) ([]domain.Milestone, error) {
	milestones, err := s.milestoneRepo.FindMilestonesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return milestones, nil
}

func (s *milestoneService) UpdateMilestone(ctx context.Context, userID string, milestoneID string, req dto.UpdateMilestoneRequest) (*domain.Milestone, error) {
	existing, err := s.milestoneRepo.FindMilestoneByIDAndUser(ctx, milestoneID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find milestone for update: %w", err)
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.AchieveDate != nil {
		achieveDate, err := dto.ParseDate(*req.AchieveDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid achieve date, expected yyyy-MM-dd")
		}
		existing.AchieveDate = &achieveDate
	}
	if req.Completed != nil {
		existing.Completed = *req.Completed
		if !*req.Completed {
			existing.CompletedDate = nil
		}
	}
	if req.CompletedDate != nil {
		completedDate, err := dto.ParseDate(*req.CompletedDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid completed date, expected yyyy-MM-dd")
		}
		existing.CompletedDate = &completedDate
	}

	if err := s.milestoneRepo.UpdateMilestone(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}
	return existing, nil
}

func (s *milestoneService) DeleteMilestone(ctx context.Context, userID string, milestoneID string) error {
	if err := s.milestoneRepo.DeleteMilestone(ctx, milestoneID, userID); err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	return nil
}
