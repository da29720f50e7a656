package repositories

import (
	"context"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// UserRepository defines persistence operations for user identities.
type UserRepository interface {
	// SaveUser inserts a new user. Returns apperrors.ErrDuplicate when the
	// username or email is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID. Returns apperrors.ErrNotFound when
	// no such user exists.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByIdentifier retrieves a user whose username OR email equals the
	// given (already normalized) identifier. Returns apperrors.ErrNotFound
	// when neither column matches.
	FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// UpdateUserProfile persists profile field changes (full name, avatar,
	// cover image). It never touches credential columns.
	UpdateUserProfile(ctx context.Context, user domain.User) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error

	// SetRefreshToken unconditionally stores refreshToken as the user's single
	// active refresh token, overwriting any prior value. Login path.
	SetRefreshToken(ctx context.Context, userID string, refreshToken string) error

	// RotateRefreshToken replaces the stored refresh token with nextToken only
	// while the stored value still equals previousToken. The conditional write
	// is what serializes concurrent refresh calls: the loser gets
	// apperrors.ErrRefreshTokenStale.
	RotateRefreshToken(ctx context.Context, userID string, previousToken string, nextToken string) error

	// ClearRefreshToken removes the stored refresh token. Idempotent.
	ClearRefreshToken(ctx context.Context, userID string) error
}
