package catalog_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"impulsa/internal/repositories"
	"impulsa/internal/services"
)

var Module = fx.Provide(provideCatalogRepo, provideCatalogService)

func provideCatalogRepo(db *gorm.DB) repositories.CatalogRepository {
	return repositories.NewCatalogRepository(db)
}

func provideCatalogService(catalogRepo repositories.CatalogRepository) services.CatalogServiceInterface {
	return services.NewCatalogService(catalogRepo)
}
