package services

import (
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(repos.UserRepo, container.Token)

	return container
}

// Compile-time interface checks
var (
	_ portssvc.UserSvcFacade  = (*userService)(nil)
	_ portssvc.AuthSvcFacade  = (*authService)(nil)
	_ portssvc.TokenSvcFacade = (*tokenService)(nil)
)
