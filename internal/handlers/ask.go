// ask.go handles question answering and quota status.
//
// POST /api/v1/documents/:id/ask       — Ask a question about a document
// GET  /api/v1/documents/:id/questions — Q&A history for a document
// GET  /api/v1/session                 — Trial quota status for this session
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BalasaitejaG/Pdf-AI/internal/middleware"
	"github.com/BalasaitejaG/Pdf-AI/internal/models"
	"github.com/BalasaitejaG/Pdf-AI/internal/services/answer"
	"github.com/BalasaitejaG/Pdf-AI/internal/services/gemini"
	"github.com/BalasaitejaG/Pdf-AI/internal/services/trial"
)

// AskQuestion answers a question about an uploaded document.
// POST /api/v1/documents/:id/ask
func (h *Handler) AskQuestion(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "question is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	doc, ok := h.loadOwnedDocument(c)
	if !ok {
		return
	}

	if doc.Status != models.StatusCompleted {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "document_not_ready",
			Message: "Text extraction did not complete for this document",
			Code:    http.StatusConflict,
		})
		return
	}

	sessionID := middleware.GetSessionID(c)
	result, err := h.Answer.Ask(c.Request.Context(), answer.Request{
		SessionID:    sessionID,
		DocumentID:   doc.ID,
		DocumentText: doc.TextContent,
		Question:     req.Question,
		SuppliedKey:  req.APIKey,
	})
	if err != nil {
		h.respondAskError(c, err)
		return
	}

	// Persist the exchange for the history view. The answer is already in
	// hand — a bookkeeping failure shouldn't cost the user their response.
	exchange := &models.Exchange{
		DocumentID: doc.ID,
		Question:   req.Question,
		Answer:     result.Answer,
		ModelUsed:  result.ModelUsed,
		UsedTrial:  result.UsedTrial,
		FromCache:  result.FromCache,
	}
	if err := h.DB.CreateExchange(c.Request.Context(), exchange); err != nil {
		log.Printf("Failed to save exchange for document %s: %v", doc.ID, err)
	}

	c.JSON(http.StatusOK, models.AskResponse{
		Answer:    result.Answer,
		ModelUsed: result.ModelUsed,
		FromCache: result.FromCache,
		Quota:     h.sessionStatus(c, sessionID),
	})
}

// respondAskError maps classified answer failures to HTTP statuses.
func (h *Handler) respondAskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, answer.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	case errors.Is(err, trial.ErrTrialLimitReached):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "trial_limit_reached",
			Message: "You've used all your free questions. Enter your own Google API key to continue.",
			Code:    http.StatusForbidden,
		})
	case errors.Is(err, gemini.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "invalid_api_key",
			Message: "The API key was rejected by the provider. Please check your key.",
			Code:    http.StatusUnauthorized,
		})
	case errors.Is(err, gemini.ErrProvider):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "ai_error",
			Message: "The AI service is currently unavailable. Please try again in a few minutes.",
			Code:    http.StatusBadGateway,
		})
	default:
		log.Printf("Answer request failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to answer the question",
			Code:    http.StatusInternalServerError,
		})
	}
}

// ListQuestions returns the Q&A history for a document.
// GET /api/v1/documents/:id/questions
func (h *Handler) ListQuestions(c *gin.Context) {
	doc, ok := h.loadOwnedDocument(c)
	if !ok {
		return
	}

	exchanges, err := h.DB.ListExchanges(c.Request.Context(), doc.ID, 100)
	if err != nil {
		log.Printf("Failed to list exchanges for document %s: %v", doc.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to load question history",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if exchanges == nil {
		exchanges = []models.Exchange{}
	}

	c.JSON(http.StatusOK, exchanges)
}

// GetSession returns the trial quota state for the current session.
// GET /api/v1/session
func (h *Handler) GetSession(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	c.JSON(http.StatusOK, h.sessionStatus(c, sessionID))
}

// sessionStatus loads the current quota counters for a session.
func (h *Handler) sessionStatus(c *gin.Context, sessionID string) models.SessionStatus {
	status := models.SessionStatus{TrialLimit: h.Resolver.TrialLimit()}

	session, err := h.DB.GetOrCreateSession(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("Failed to load session %s: %v", sessionID, err)
		return status
	}

	status.TrialQuestionsUsed = session.TrialQuestionsUsed
	status.HasCustomKey = session.HasCustomKey()
	return status
}
