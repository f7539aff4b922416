package services

import (
	portsrepo "github.com/edujournal/journal_backend/internal/core/ports/repositories"
	portssvc "github.com/edujournal/journal_backend/internal/core/ports/services"
	"github.com/edujournal/journal_backend/internal/platform/config"
	"github.com/edujournal/journal_backend/internal/platform/storage"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.UserRepo)
	container.GoogleAuth = NewGoogleAuthService(cfg)

	media, err := storage.NewCloudinaryService(cfg)
	if err != nil {
		return nil, err
	}
	container.Media = media

	return container, nil
}
