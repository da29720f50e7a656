package services

import (
	"context"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
	"github.com/vidtube/vidtube_backend/internal/dto"
)

// UserSvcFacade defines read and profile-write operations for users.
type UserSvcFacade interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// UpdateProfile updates the user's profile fields. Credential columns are
	// never written through this path.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)
}
