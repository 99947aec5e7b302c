package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"impulsa/cmd/fx/account_fx"
	"impulsa/cmd/fx/catalog_fx"
	"impulsa/cmd/fx/comparison_fx"
	"impulsa/cmd/fx/controllers_fx"
	"impulsa/cmd/fx/db_fx"
	"impulsa/cmd/fx/profile_fx"
	"impulsa/cmd/fx/recommendation_fx"
	"impulsa/cmd/fx/scoring_fx"
	"impulsa/cmd/fx/session_fx"
	"impulsa/internal/api/controllers"
	"impulsa/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		catalog_fx.Module,
		profile_fx.Module,
		session_fx.Module,
		scoring_fx.Module,
		recommendation_fx.Module,
		comparison_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	catalogController *controllers.CatalogController,
	diagnosticsController *controllers.DiagnosticsController,
	profileController *controllers.ProfileController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, catalogController, diagnosticsController, profileController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	catalogController *controllers.CatalogController,
	diagnosticsController *controllers.DiagnosticsController,
	profileController *controllers.ProfileController) {

	authGroup := r.Group("/auth")
	authGroup.POST("/signup", accountController.SignUp)
	authGroup.POST("/login", accountController.Login)

	diagnosticsGroup := r.Group("/diagnostics")
	diagnosticsGroup.Use(middleware.JWTAuthMiddleware())
	diagnosticsGroup.GET("/types", catalogController.ListTypes)
	diagnosticsGroup.GET("/types/:id", catalogController.GetType)
	diagnosticsGroup.POST("/start", diagnosticsController.StartSession)
	diagnosticsGroup.GET("/sessions", diagnosticsController.ListSessions)
	diagnosticsGroup.GET("/:id/progress", diagnosticsController.GetProgress)
	diagnosticsGroup.POST("/:id/answer", diagnosticsController.SaveAnswer)
	diagnosticsGroup.POST("/:id/answers", diagnosticsController.SaveAnswersBatch)
	diagnosticsGroup.POST("/:id/finalize", diagnosticsController.FinalizeSession)
	diagnosticsGroup.GET("/:id/results", diagnosticsController.GetResults)
	diagnosticsGroup.GET("/:id/compare/:previousId", diagnosticsController.CompareSessions)
	diagnosticsGroup.DELETE("/:id", diagnosticsController.CancelSession)

	profilesGroup := r.Group("/profiles")
	profilesGroup.Use(middleware.JWTAuthMiddleware())
	profilesGroup.POST("", profileController.CreateProfile)
	profilesGroup.GET("", profileController.ListProfiles)

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	adminGroup.POST("/diagnostics/types", catalogController.CreateType)
	adminGroup.PUT("/diagnostics/types/:id", catalogController.UpdateType)
	adminGroup.DELETE("/diagnostics/types/:id", catalogController.DeleteType)
	adminGroup.POST("/areas", catalogController.CreateArea)
	adminGroup.PUT("/areas/:id", catalogController.UpdateArea)
	adminGroup.DELETE("/areas/:id", catalogController.DeleteArea)
	adminGroup.POST("/areas/:id/rules", catalogController.CreateRule)
	adminGroup.DELETE("/rules/:id", catalogController.DeleteRule)
	adminGroup.POST("/questions", catalogController.CreateQuestion)
	adminGroup.PUT("/questions/:id", catalogController.UpdateQuestion)
	adminGroup.DELETE("/questions/:id", catalogController.DeleteQuestion)
}
