package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
)

type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// UpdateProfile applies the provided profile changes. The repository write
// path only ever touches profile columns, so a profile update can never
// re-hash a password or disturb the refresh-token slot.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.CoverImageURL != nil {
		user.CoverImageURL = *req.CoverImageURL
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUserProfile(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	scrubbed := user.Scrubbed()
	return &scrubbed, nil
}
