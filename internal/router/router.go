// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/BalasaitejaG/Pdf-AI/internal/config"
	"github.com/BalasaitejaG/Pdf-AI/internal/database"
	"github.com/BalasaitejaG/Pdf-AI/internal/handlers"
	"github.com/BalasaitejaG/Pdf-AI/internal/middleware"
	"github.com/BalasaitejaG/Pdf-AI/internal/services/answer"
	"github.com/BalasaitejaG/Pdf-AI/internal/services/trial"
	"github.com/BalasaitejaG/Pdf-AI/web"
)

// Setup creates and configures the Gin router with all routes.
func Setup(cfg *config.Config, db *database.DB, ans *answer.Service, resolver *trial.Resolver, version string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	h := handlers.NewHandler(db, ans, resolver, version)
	rateLimiter := middleware.NewRateLimiter(cfg.SessionRateLimit)

	// Health is public and session-free so load balancers can probe it.
	r.GET("/api/v1/health", h.HealthCheck)

	// Everything else runs with an anonymous session identity — the cookie
	// is what the trial quota hangs off.
	api := r.Group("/api/v1")
	api.Use(middleware.SessionIdentity(cfg.SessionSecret, cfg.GinMode == "release"))
	api.Use(rateLimiter.RateLimit())
	{
		api.GET("/session", h.GetSession)

		api.POST("/documents", h.UploadDocument)
		api.GET("/documents", h.ListDocuments)
		api.GET("/documents/:id", h.GetDocument)
		api.DELETE("/documents/:id", h.DeleteDocument)
		api.POST("/documents/:id/ask", h.AskQuestion)
		api.GET("/documents/:id/questions", h.ListQuestions)
	}

	// Embedded single-page UI for everything that isn't the API.
	r.NoRoute(gin.WrapH(web.Handler()))

	return r
}
