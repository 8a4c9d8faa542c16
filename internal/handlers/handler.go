// Package handlers contains HTTP handler functions for the API.
//
// Go Pattern: Handlers in Gin receive a *gin.Context which provides request
// data, response methods, and middleware values. Related handlers hang off a
// Handler struct that holds shared dependencies — dependency injection via
// struct fields, which makes testing straightforward.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BalasaitejaG/Pdf-AI/internal/database"
	"github.com/BalasaitejaG/Pdf-AI/internal/models"
	"github.com/BalasaitejaG/Pdf-AI/internal/services/answer"
	"github.com/BalasaitejaG/Pdf-AI/internal/services/trial"
)

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	DB       *database.DB
	Answer   *answer.Service
	Resolver *trial.Resolver
	Version  string
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(db *database.DB, ans *answer.Service, resolver *trial.Resolver, version string) *Handler {
	return &Handler{
		DB:       db,
		Answer:   ans,
		Resolver: resolver,
		Version:  version,
	}
}

// HealthCheck returns the API health status.
// GET /api/v1/health
func (h *Handler) HealthCheck(c *gin.Context) {
	dbStatus := "healthy"
	if err := h.DB.HealthCheck(c.Request.Context()); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Version:  h.Version,
		Database: dbStatus,
	})
}
