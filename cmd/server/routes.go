package main

import (
	"github.com/gin-gonic/gin"

	"github.com/fenceplan/fenceplan/internal/config"
	"github.com/fenceplan/fenceplan/internal/middleware"
	"github.com/fenceplan/fenceplan/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	// Rate limiter for credential and geocode routes
	authLimiter := middleware.NewRateLimiter(5, 10)
	geocodeLimiter := middleware.NewRateLimiter(2, 5)

	cookieName := cfg.Session.CookieName
	sessionRequired := middleware.SessionRequired(cookieName, svc.authService)
	sessionOptional := middleware.SessionOptional(cookieName, svc.authService)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	api := r.Group("/api")
	{
		// Auth
		api.GET("/user", sessionOptional, svc.authHandler.Me)
		api.POST("/register", authLimiter.Middleware(), svc.authHandler.Register)
		api.POST("/login", authLimiter.Middleware(), svc.authHandler.Login)
		api.POST("/logout", sessionOptional, svc.authHandler.Logout)

		// Geocoding
		api.GET("/geocode", geocodeLimiter.Middleware(), svc.geocodeHandler.Search)

		// Projects
		api.GET("/projects", sessionRequired, svc.projectHandler.List)
		api.GET("/projects/:id", sessionOptional, svc.projectHandler.Get)
		api.GET("/projects/:id/stats", sessionOptional, svc.projectHandler.Stats)
		api.POST("/projects", sessionOptional, svc.projectHandler.Create)
		api.PUT("/projects/:id", sessionRequired, svc.projectHandler.Update)
		api.DELETE("/projects/:id", sessionRequired, svc.projectHandler.Delete)

		// Fence lines
		api.POST("/projects/:id/fence-lines", sessionRequired, svc.fenceLineHandler.Create)
		api.PUT("/fence-lines/:id", sessionRequired, svc.fenceLineHandler.Update)
		api.DELETE("/fence-lines/:id", sessionRequired, svc.fenceLineHandler.Delete)
	}
}
