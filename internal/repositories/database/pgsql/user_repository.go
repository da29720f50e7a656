package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	"github.com/vidtube/vidtube_backend/internal/models"
	"github.com/vidtube/vidtube_backend/internal/utils/mapping"
)

const pgUniqueViolation = "23505"

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, email, full_name, avatar_url, cover_image_url, password_hash, refresh_token, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.FullName,
		&m.AvatarURL,
		&m.CoverImageURL,
		&m.PasswordHash,
		&m.RefreshToken,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (user_id, username, email, full_name, avatar_url, cover_image_url, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.Email,
		m.FullName,
		m.AvatarURL,
		m.CoverImageURL,
		m.PasswordHash,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	// Username and email are unique across both columns (enforced at
	// registration), so this can match at most one row.
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by identifier: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) UpdateUserProfile(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	// Deliberately narrow column list: credential columns are owned by the
	// password and refresh-token paths.
	query := `
        UPDATE users
        SET full_name = $1, avatar_url = $2, cover_image_url = $3, updated_at = $4
        WHERE user_id = $5;
    `
	cmdTag, err := r.db.Exec(ctx, query, m.FullName, m.AvatarURL, m.CoverImageURL, m.UpdatedAt, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	query := `
        UPDATE users
        SET password_hash = $1, updated_at = now()
        WHERE user_id = $2;
    `
	cmdTag, err := r.db.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) SetRefreshToken(ctx context.Context, userID string, refreshToken string) error {
	query := `
        UPDATE users
        SET refresh_token = $1, updated_at = now()
        WHERE user_id = $2;
    `
	cmdTag, err := r.db.Exec(ctx, query, refreshToken, userID)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) RotateRefreshToken(ctx context.Context, userID string, previousToken string, nextToken string) error {
	// Conditional write: only succeeds while the stored token is still the one
	// the caller just validated. Two concurrent rotations of the same token
	// race here and exactly one wins; the loser sees zero rows.
	query := `
        UPDATE users
        SET refresh_token = $1, updated_at = now()
        WHERE user_id = $2 AND refresh_token = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, nextToken, userID, previousToken)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRefreshTokenStale
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
        UPDATE users
        SET refresh_token = NULL, updated_at = now()
        WHERE user_id = $1;
    `
	// Idempotent: clearing an absent slot (or a vanished user) is not an error.
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}
