package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/utils"
)

// authService implements the AuthSvcFacade session lifecycle over the user
// repository and the token service. Each operation is single-shot: one read
// and at most one write, no internal retries.
type authService struct {
	userRepo portsrepo.UserRepository
	tokenSvc portssvc.TokenSvcFacade
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo portsrepo.UserRepository, tokenSvc portssvc.TokenSvcFacade) portssvc.AuthSvcFacade {
	return &authService{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

// Register creates a new identity. Username and email are normalized before
// any lookup or write, and uniqueness is enforced across BOTH columns: a new
// username may not collide with an existing email and vice versa, which keeps
// the username-or-email login lookup unambiguous.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	username := normalizeIdentifier(req.Username)
	email := normalizeIdentifier(req.Email)

	for _, identifier := range []string{username, email} {
		_, err := s.userRepo.FindUserByIdentifier(ctx, identifier)
		if err == nil {
			return nil, apperrors.ErrDuplicate
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check identifier availability: %w", err)
		}
	}

	// The password is hashed here and nowhere else on the create path.
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: passwordHash,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	scrubbed := user.Scrubbed()
	return &scrubbed, nil
}

// Login authenticates by username-or-email, issues a fresh token pair and
// persists the refresh token as the identity's single active session.
func (s *authService) Login(ctx context.Context, identifier string, password string) (*domain.User, *portssvc.TokenPair, error) {
	user, err := s.userRepo.FindUserByIdentifier(ctx, normalizeIdentifier(identifier))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to look up user for login: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	// Overwrites any prior refresh token: logging in on a second device
	// invalidates the first device's session.
	if err := s.userRepo.SetRefreshToken(ctx, user.UserID, pair.RefreshToken); err != nil {
		return nil, nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	scrubbed := user.Scrubbed()
	return &scrubbed, pair, nil
}

// Refresh verifies the presented refresh token, compares it against the stored
// slot and rotates it. The rotation write is conditional on the stored value
// still being the token just validated; a concurrent refresh that loses the
// race gets ErrRefreshTokenStale instead of silently overwriting.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*portssvc.TokenPair, error) {
	claims, err := s.tokenSvc.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user for refresh: %w", err)
	}

	// A signed token that no longer matches the slot was rotated away,
	// cleared by logout, or is being replayed.
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, apperrors.ErrRefreshTokenStale
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.RotateRefreshToken(ctx, user.UserID, refreshToken, pair.RefreshToken); err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout clears the stored refresh token. The access token already in the
// client's hands stays valid until its own expiry; stateless tokens cannot be
// recalled.
func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

// ChangePassword verifies the old password before re-hashing the new one.
// The current session's tokens are left untouched.
func (s *authService) ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *authService) issuePair(user *domain.User) (*portssvc.TokenPair, error) {
	accessToken, accessExpiry, err := s.tokenSvc.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, refreshExpiry, err := s.tokenSvc.IssueRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return &portssvc.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
