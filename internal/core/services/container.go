package services

import (
	"github.com/SscSPs/mini_bank_api/internal/core/ports"
	portsrepo "github.com/SscSPs/mini_bank_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mini_bank_api/internal/core/ports/services"
	"github.com/SscSPs/mini_bank_api/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, eventLogger ports.EventLogger) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(repos.AccountRepo, WithEventLogger(eventLogger)),
		Auth:    NewAuthService(repos.UserRepo, cfg, eventLogger),
	}
}
