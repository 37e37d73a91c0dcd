package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skywalker/milestone_backend/internal/apperrors"
	"github.com/skywalker/milestone_backend/internal/core/domain"
	portsrepo "github.com/skywalker/milestone_backend/internal/core/ports/repositories"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, first_name, last_name, password_hash, auth_provider, provider_id, image_url, created_at`

func (r *PgxUserRepository) CreateUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.AuthProvider,
		user.ProviderID,
		user.ImageURL,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("user with email %s: %w", user.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return r.scanUser(r.db.QueryRow(ctx, query, userID), userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return r.scanUser(r.db.QueryRow(ctx, query, email), email)
}

func (r *PgxUserRepository) scanUser(row pgx.Row, key string) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.AuthProvider,
		&user.ProviderID,
		&user.ImageURL,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", key, err)
	}
	return &user, nil
}

// UpdateUser persists the mutable profile and provider-link fields. Email and
// created_at never change after creation.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET first_name = $1, last_name = $2, auth_provider = $3, provider_id = $4, image_url = $5
        WHERE user_id = $6;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		user.FirstName,
		user.LastName,
		user.AuthProvider,
		user.ProviderID,
		user.ImageURL,
		user.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}
