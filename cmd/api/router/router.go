package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"notebrief/cmd/api/handlers"
	"notebrief/cmd/api/middleware"
	"notebrief/cmd/api/services"
	_ "notebrief/docs"
)

// Deps carries the wired services the routes need.
type Deps struct {
	Summarize *services.SummarizeService
	History   *services.HistoryService
	Auth      *services.AuthService
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogging())
	r.Use(middleware.Recovery())

	// Health check
	r.GET("/health", handlers.HealthHandler())

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(middleware.Identity(deps.Auth.JWTManager()))
	{
		api.POST("/summarize", handlers.SummarizeHandler(deps.Summarize))
		api.POST("/notes/upload", handlers.UploadHandler(deps.Summarize))

		api.GET("/history", handlers.ListHistoryHandler(deps.History))
		api.GET("/history/stats", handlers.HistoryStatsHandler(deps.History))
		api.GET("/history/:id", handlers.GetHistoryHandler(deps.History))
		api.PUT("/history/:id", handlers.UpdateHistoryHandler(deps.History))
		api.DELETE("/history/:id", handlers.DeleteHistoryHandler(deps.History))
		api.DELETE("/history", handlers.DeleteAllHistoryHandler(deps.History))

		api.POST("/auth/verify", handlers.VerifyHandler(deps.Auth))
		api.POST("/auth/guest", handlers.GuestHandler(deps.Auth))
		api.GET("/auth/me", middleware.RequireUser(), handlers.MeHandler(deps.Auth))
	}

	return r
}
