package services

import (
	"log/slog"

	portsrepo "github.com/skywalker/milestone_backend/internal/core/ports/repositories"
	portssvc "github.com/skywalker/milestone_backend/internal/core/ports/services"
	"github.com/skywalker/milestone_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, logger)
	container.Milestone = NewMilestoneService(repos.MilestoneRepo)
	container.Token = NewTokenService(cfg)
	container.OAuth = NewOAuthService(cfg)
	container.OAuthLogin = NewOAuthLoginService(cfg, container.User, container.Token, logger)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.UserSvcFacade       = (*userService)(nil)
	_ portssvc.MilestoneSvcFacade  = (*milestoneService)(nil)
	_ portssvc.TokenSvcFacade      = (*tokenService)(nil)
	_ portssvc.OAuthSvcFacade      = (*oauthService)(nil)
	_ portssvc.OAuthLoginSvcFacade = (*oauthLoginService)(nil)
)
