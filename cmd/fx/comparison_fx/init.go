package comparison_fx

import (
	"go.uber.org/fx"
	"impulsa/internal/services"
)

var Module = fx.Provide(provideComparisonService)

func provideComparisonService(sessionService services.SessionServiceInterface) services.ComparisonServiceInterface {
	return services.NewComparisonService(sessionService)
}
