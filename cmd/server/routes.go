package main

import (
	"github.com/alwadigroup/alwadi-backend/internal/handlers"
	"github.com/alwadigroup/alwadi-backend/internal/middleware"
	"github.com/alwadigroup/alwadi-backend/internal/models"
	"github.com/alwadigroup/alwadi-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(middleware.RequestID())
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the public submission endpoints
	submitLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "alwadi-backend"})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", svc.authHandler.Login)
		}

		// Feedback collection and dashboard (public surface, consumed
		// by the marketing site and the feedback dashboard)
		feedbackHandler := handlers.NewFeedbackHandler(models.GetDB(), svc.classifier)
		api.POST("/feedback", submitLimiter.Middleware(), feedbackHandler.Create)
		api.GET("/feedback", feedbackHandler.List)
		api.PATCH("/feedback/:id/respond", feedbackHandler.Respond)

		// Analytics
		analyticsHandler := handlers.NewAnalyticsHandler(models.GetDB())
		api.GET("/analytics/sentiment-stats", analyticsHandler.SentimentStats)
		api.GET("/analytics/sentiment-trends", analyticsHandler.SentimentTrends)
		api.GET("/analytics/response-stats", analyticsHandler.ResponseStats)

		// Export
		exportHandler := handlers.NewExportHandler(models.GetDB())
		api.GET("/export/feedback", exportHandler.Feedback)

		// Contact inquiries: submission is public, the back office is not
		inquiryHandler := handlers.NewInquiryHandler(models.GetDB())
		api.POST("/inquiries", submitLimiter.Middleware(), inquiryHandler.Create)

		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.GET("/inquiries", inquiryHandler.List)
			protected.PATCH("/inquiries/:id/status", inquiryHandler.UpdateStatus)
		}
	}
}
