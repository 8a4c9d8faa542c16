// documents.go handles PDF upload and document retrieval.
//
// POST /api/v1/documents       — Upload a PDF for text extraction
// GET  /api/v1/documents/:id   — Get one document
// GET  /api/v1/documents       — List the session's documents
package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BalasaitejaG/Pdf-AI/internal/middleware"
	"github.com/BalasaitejaG/Pdf-AI/internal/models"
	"github.com/BalasaitejaG/Pdf-AI/internal/services/pdfextract"
)

// maxPDFSize is the max upload size for PDF files (50MB).
const maxPDFSize = 50 << 20

// UploadDocument handles PDF file upload and text extraction.
// POST /api/v1/documents
//
// Accepts a multipart upload with field name "file". Only .pdf files are
// accepted. Extraction is synchronous — PDFs process fast enough that a job
// queue would be overkill here.
func (h *Handler) UploadDocument(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	// Limit request body size
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPDFSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "No PDF file provided. Upload a file with the field name 'file'. Max size: 50MB.",
			Code:    http.StatusBadRequest,
		})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file_type",
			Message: fmt.Sprintf("Unsupported file format '%s'. Only .pdf files are accepted.", ext),
			Code:    http.StatusBadRequest,
		})
		return
	}

	// The pdf library needs random access, so read the upload into memory.
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "read_error",
			Message: "Failed to read uploaded file",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if !pdfextract.ValidatePDF(data) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_pdf",
			Message: "The uploaded file does not appear to be a valid PDF",
			Code:    http.StatusBadRequest,
		})
		return
	}

	// The session row must exist before the document references it.
	if _, err := h.DB.GetOrCreateSession(c.Request.Context(), sessionID); err != nil {
		log.Printf("Failed to ensure session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to load session",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	storedFilename := uuid.New().String() + ".pdf"

	result, err := pdfextract.Extract(data)
	if err != nil {
		log.Printf("PDF extraction failed for %s: %v", header.Filename, err)

		// Save the failed record so the UI can show what went wrong
		doc := &models.Document{
			SessionID:    sessionID,
			OriginalName: header.Filename,
			Filename:     storedFilename,
			Status:       models.StatusFailed,
			ErrorMessage: err.Error(),
		}
		h.DB.CreateDocument(c.Request.Context(), doc)

		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "extraction_failed",
			Message: "PDF text extraction failed: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	doc := &models.Document{
		SessionID:    sessionID,
		OriginalName: header.Filename,
		Filename:     storedFilename,
		PageCount:    result.PageCount,
		WordCount:    result.WordCount,
		TextContent:  result.Text,
		Status:       models.StatusCompleted,
	}

	if err := h.DB.CreateDocument(c.Request.Context(), doc); err != nil {
		log.Printf("Failed to save document record: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to save document",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// loadOwnedDocument fetches a document and verifies it belongs to the session.
func (h *Handler) loadOwnedDocument(c *gin.Context) (*models.Document, bool) {
	sessionID := middleware.GetSessionID(c)
	id := c.Param("id")

	doc, err := h.DB.GetDocument(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Document not found",
			Code:    http.StatusNotFound,
		})
		return nil, false
	}

	if doc.SessionID != sessionID {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "forbidden",
			Message: "You can only access your own documents",
			Code:    http.StatusForbidden,
		})
		return nil, false
	}

	return doc, true
}

// GetDocument retrieves a single document by ID.
// GET /api/v1/documents/:id
func (h *Handler) GetDocument(c *gin.Context) {
	doc, ok := h.loadOwnedDocument(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ListDocuments returns recent documents for the current session.
// GET /api/v1/documents
func (h *Handler) ListDocuments(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	docs, err := h.DB.ListDocuments(c.Request.Context(), sessionID, 50)
	if err != nil {
		log.Printf("Failed to list documents for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to list documents",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if docs == nil {
		docs = []models.Document{}
	}

	c.JSON(http.StatusOK, docs)
}

// DeleteDocument removes a document and its history.
// DELETE /api/v1/documents/:id
func (h *Handler) DeleteDocument(c *gin.Context) {
	doc, ok := h.loadOwnedDocument(c)
	if !ok {
		return
	}

	if err := h.DB.DeleteDocument(c.Request.Context(), doc.ID); err != nil {
		log.Printf("Failed to delete document %s: %v", doc.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to delete document",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
