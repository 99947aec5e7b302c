package controllers_fx

import (
	"go.uber.org/fx"
	"impulsa/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewCatalogController),
	fx.Provide(controllers.NewDiagnosticsController),
	fx.Provide(controllers.NewProfileController))
