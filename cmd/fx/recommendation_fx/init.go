package recommendation_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"impulsa/internal/repositories"
	"impulsa/internal/services"
)

var Module = fx.Provide(provideRecommendationRepo, provideRecommendationService)

func provideRecommendationRepo(db *gorm.DB) repositories.RecommendationRepository {
	return repositories.NewRecommendationRepository(db)
}

func provideRecommendationService(
	recommendationRepo repositories.RecommendationRepository,
	catalogRepo repositories.CatalogRepository,
	sessionService services.SessionServiceInterface,
	config services.ScoringConfig,
) services.RecommendationServiceInterface {
	return services.NewRecommendationService(recommendationRepo, catalogRepo, sessionService, config)
}
