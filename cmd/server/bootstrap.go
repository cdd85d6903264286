package main

import (
	"github.com/alwadigroup/alwadi-backend/internal/config"
	"github.com/alwadigroup/alwadi-backend/internal/handlers"
	"github.com/alwadigroup/alwadi-backend/internal/models"
	"github.com/alwadigroup/alwadi-backend/internal/services"
	"github.com/alwadigroup/alwadi-backend/internal/utils"
	"github.com/alwadigroup/alwadi-backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	classifier    services.Classifier
	digestService *services.DigestService
	authHandler   *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, classifier, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Create default admin user for the inquiry desk
	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	// Sentiment classifier (remote, best-effort)
	classifier := services.NewSentimentService(&cfg.Classifier)
	if cfg.Classifier.APIKey == "" {
		logger.Warn().Str("provider", cfg.Classifier.Provider).
			Msg("classifier API key not configured; submissions will fall back to neutral sentiment")
	}

	// Daily sentiment digest scheduler
	digestService := services.NewDigestService(models.GetDB(), &cfg.Digest)
	digestService.StartScheduler()

	return &appServices{
		classifier:    classifier,
		digestService: digestService,
		authHandler:   authHandler,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.digestService.StopScheduler()
	logger.Info().Msg("All schedulers stopped")
}
