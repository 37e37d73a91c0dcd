package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skywalker/milestone_backend/internal/apperrors"
	"github.com/skywalker/milestone_backend/internal/core/domain"
	portsrepo "github.com/skywalker/milestone_backend/internal/core/ports/repositories"
)

type PgxMilestoneRepository struct {
	db *pgxpool.Pool
}

func newPgxMilestoneRepository(db *pgxpool.Pool) portsrepo.MilestoneRepository {
	return &PgxMilestoneRepository{db: db}
}

// Ensure PgxMilestoneRepository implements portsrepo.MilestoneRepository
var _ portsrepo.MilestoneRepository = (*PgxMilestoneRepository)(nil)

const milestoneColumns = `milestone_id, user_id, title, description, completed, achieve_date, completed_date, created_at`

func (r *PgxMilestoneRepository) SaveMilestone(ctx context.Context, milestone domain.Milestone) error {
	query := `
        INSERT INTO milestones (` + milestoneColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		milestone.MilestoneID,
		milestone.UserID,
		milestone.Title,
		milestone.Description,
		milestone.Completed,
		milestone.AchieveDate,
		milestone.CompletedDate,
		milestone.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save milestone: %w", err)
	}
	return nil
}

func (r *PgxMilestoneRepository) FindMilestoneByIDAndUser(ctx context.Context, milestoneID, userID string) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE milestone_id = $1 AND user_id = $2;`
	var m domain.Milestone
	err := r.db.QueryRow(ctx, query, milestoneID, userID).Scan(
		&m.MilestoneID,
		&m.UserID,
		&m.Title,
		&m.Description,
		&m.Completed,
		&m.AchieveDate,
		&m.CompletedDate,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find milestone %s: %w", milestoneID, err)
	}
	return &m, nil
}

func (r *PgxMilestoneRepository) FindMilestonesByUser(ctx context.Context, userID string) ([]domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query milestones: %w", err)
	}
	defer rows.Close()

	milestones := []domain.Milestone{}
	for rows.Next() {
		var m domain.Milestone
		err := rows.Scan(
			&m.MilestoneID,
			&m.UserID,
			&m.Title,
			&m.Description,
			&m.Completed,
			&m.AchieveDate,
			&m.CompletedDate,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan milestone row: %w", err)
		}
		milestones = append(milestones, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating milestone rows: %w", rows.Err())
	}
	return milestones, nil
}

func (r *PgxMilestoneRepository) UpdateMilestone(ctx context.Context, milestone domain.Milestone) error {
	query := `
        UPDATE milestones
        SET title = $1, description = $2, completed = $3, achieve_date = $4, completed_date = $5
        WHERE milestone_id = $6 AND user_id = $7;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		milestone.Title,
		milestone.Description,
		milestone.Completed,
		milestone.AchieveDate,
		milestone.CompletedDate,
		milestone.MilestoneID,
		milestone.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update milestone query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("milestone %s: %w", milestone.MilestoneID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxMilestoneRepository) DeleteMilestone(ctx context.Context, milestoneID, userID string) error {
	query := `DELETE FROM milestones WHERE milestone_id = $1 AND user_id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, milestoneID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("milestone %s: %w", milestoneID, apperrors.ErrNotFound)
	}
	return nil
}
