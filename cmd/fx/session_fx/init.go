package session_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"impulsa/internal/repositories"
	"impulsa/internal/services"
)

var Module = fx.Provide(provideSessionRepo, provideSessionService)

func provideSessionRepo(db *gorm.DB) repositories.SessionRepository {
	return repositories.NewSessionRepository(db)
}

func provideSessionService(
	sessionRepo repositories.SessionRepository,
	catalogRepo repositories.CatalogRepository,
	profileRepo repositories.ProfileRepository,
) services.SessionServiceInterface {
	return services.NewSessionService(sessionRepo, catalogRepo, profileRepo)
}
