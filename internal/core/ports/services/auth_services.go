package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	"github.com/vidtube/vidtube_backend/internal/dto"
)

// AccessTokenClaims is the payload of an access token: identity id (subject)
// plus the public profile claims downstream handlers read without a lookup.
type AccessTokenClaims struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	FullName string `json:"fullname,omitempty"`
	jwt.RegisteredClaims
}

// RefreshTokenClaims is the payload of a refresh token. Deliberately minimal:
// only the identity id travels with it.
type RefreshTokenClaims struct {
	jwt.RegisteredClaims
}

// TokenPair bundles a freshly issued access/refresh token with their expiries.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// TokenSvcFacade defines the interface for issuing and verifying tokens.
// Access and refresh tokens are signed with distinct secrets, so a token of
// one kind can never verify as the other.
type TokenSvcFacade interface {
	// IssueAccessToken creates a short-lived signed access token for the user.
	IssueAccessToken(user *domain.User) (string, time.Time, error)
	// IssueRefreshToken creates a long-lived signed refresh token for the user.
	IssueRefreshToken(user *domain.User) (string, time.Time, error)
	// VerifyAccessToken checks signature and expiry of an access token.
	// Returns apperrors.ErrTokenExpired or apperrors.ErrTokenInvalid.
	VerifyAccessToken(tokenString string) (*AccessTokenClaims, error)
	// VerifyRefreshToken checks signature and expiry of a refresh token.
	// Returns apperrors.ErrTokenExpired or apperrors.ErrTokenInvalid.
	VerifyRefreshToken(tokenString string) (*RefreshTokenClaims, error)
}

// AuthSvcFacade defines the session lifecycle operations.
type AuthSvcFacade interface {
	// Register creates a new identity with a hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login authenticates by username-or-email and password, persists the new
	// refresh token as the user's single active session and returns the
	// scrubbed user with the token pair. A successful login silently
	// invalidates any prior refresh token for the same identity.
	Login(ctx context.Context, identifier string, password string) (*domain.User, *TokenPair, error)

	// Refresh exchanges a valid, current refresh token for a new token pair,
	// rotating the stored value. A superseded or cleared token fails with
	// apperrors.ErrRefreshTokenStale.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Logout clears the stored refresh token. Already-issued access tokens
	// stay valid until their own expiry.
	Logout(ctx context.Context, userID string) error

	// ChangePassword verifies the old password and re-hashes the new one.
	// Existing sessions stay valid.
	ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string) error
}
