package scoring_fx

import (
	"go.uber.org/fx"
	"impulsa/internal/repositories"
	"impulsa/internal/services"
)

var Module = fx.Provide(provideScoringConfig, provideScoringService)

func provideScoringConfig() services.ScoringConfig {
	return services.ScoringConfigFromEnv()
}

func provideScoringService(
	sessionService services.SessionServiceInterface,
	sessionRepo repositories.SessionRepository,
	catalogRepo repositories.CatalogRepository,
	config services.ScoringConfig,
) services.ScoringServiceInterface {
	return services.NewScoringService(sessionService, sessionRepo, catalogRepo, config)
}
