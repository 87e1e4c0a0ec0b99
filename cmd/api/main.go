package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/cors"

	"notebrief/cmd/api/router"
	"notebrief/cmd/api/services"
	"notebrief/cmd/internal/logger"
	"notebrief/config"
	"notebrief/db"
	_ "notebrief/docs" // swag generated package
	"notebrief/extract"
	"notebrief/repositories"
	"notebrief/summarizer"
)

// @title           notebrief API
// @version         1.0
// @description     API for summarizing pasted text and uploaded documents
// @BasePath        /api
func main() {
	config.InitApp()
	logger.Init(config.GetConfig().Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("mongodb init failed: %v", err)
		os.Exit(1)
	}
	defer db.Disconnect(ctx)

	sm, err := summarizer.New(ctx)
	if err != nil {
		logger.Log.Errorf("summarizer init failed: %v", err)
		os.Exit(1)
	}

	summaries := repositories.NewSummaryRepository(db.Database())
	users := repositories.NewUserRepository(db.Database())

	authSvc, err := services.NewAuthServiceFromConfig(users)
	if err != nil {
		logger.Log.Errorf("auth init failed: %v", err)
		os.Exit(1)
	}

	deps := router.Deps{
		Summarize: services.NewSummarizeService(extract.New(), sm, summaries, config.GetConfig().Upload.MaxFileSizeBytes),
		History:   services.NewHistoryService(summaries),
		Auth:      authSvc,
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router.New(deps))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	logger.Log.Infof("listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil && err != http.ErrServerClosed {
		logger.Log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}

func allowedOrigins() []string {
	if origin := os.Getenv("CORS_ALLOWED_ORIGIN"); origin != "" {
		return []string{origin}
	}
	return []string{"http://localhost:3000"}
}
