package main

import (
	"github.com/fenceplan/fenceplan/internal/config"
	"github.com/fenceplan/fenceplan/internal/handlers"
	"github.com/fenceplan/fenceplan/internal/models"
	"github.com/fenceplan/fenceplan/internal/services"
	"github.com/fenceplan/fenceplan/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	authService    *services.AuthService
	sessionCleanup *services.SessionCleanupService

	authHandler      *handlers.AuthHandler
	projectHandler   *handlers.ProjectHandler
	fenceLineHandler *handlers.FenceLineHandler
	geocodeHandler   *handlers.GeocodeHandler
	healthHandler    *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed sample data
	if err := models.SeedSampleData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed sample data")
	}

	db := models.GetDB()

	authService := services.NewAuthService(db, &cfg.Session)

	// Start expired session purge scheduler
	sessionCleanup := services.NewSessionCleanupService(authService)
	sessionCleanup.StartScheduler()

	geocodeService := services.NewGeocodeService(&cfg.Geocoder)

	return &appServices{
		authService:      authService,
		sessionCleanup:   sessionCleanup,
		authHandler:      handlers.NewAuthHandler(db, &cfg.Session),
		projectHandler:   handlers.NewProjectHandler(db),
		fenceLineHandler: handlers.NewFenceLineHandler(db),
		geocodeHandler:   handlers.NewGeocodeHandler(geocodeService),
		healthHandler:    handlers.NewHealthHandler(),
	}
}

// shutdown stops background schedulers.
func (s *appServices) shutdown() {
	s.sessionCleanup.StopScheduler()
}
