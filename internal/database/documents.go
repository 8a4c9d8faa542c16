// documents.go handles uploaded PDF document records and their Q&A history.
package database

import (
	"context"
	"fmt"

	"github.com/BalasaitejaG/Pdf-AI/internal/models"
)

// --- Document Operations ---

// CreateDocument inserts a new document record.
// Returns the created document with its generated ID and timestamp.
func (db *DB) CreateDocument(ctx context.Context, d *models.Document) error {
	query := `
		INSERT INTO documents (session_id, original_name, filename, page_count, word_count, text_content, status, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	return db.QueryRowContext(ctx, query,
		d.SessionID, d.OriginalName, d.Filename, d.PageCount,
		d.WordCount, d.TextContent, d.Status, d.ErrorMessage,
	).Scan(&d.ID, &d.CreatedAt)
}

// GetDocument retrieves a single document by ID.
func (db *DB) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var d models.Document
	err := db.GetContext(ctx, &d, `SELECT * FROM documents WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("document not found: %w", err)
	}
	return &d, nil
}

// ListDocuments returns recent documents for a session, newest first.
func (db *DB) ListDocuments(ctx context.Context, sessionID string, limit int) ([]models.Document, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var docs []models.Document
	err := db.SelectContext(ctx, &docs,
		`SELECT * FROM documents WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes a document by ID.
func (db *DB) DeleteDocument(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("document not found")
	}
	return nil
}

// --- Exchange Operations ---

// CreateExchange inserts a question/answer record for a document.
func (db *DB) CreateExchange(ctx context.Context, e *models.Exchange) error {
	query := `
		INSERT INTO exchanges (document_id, question, answer, model_used, used_trial, from_cache)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return db.QueryRowContext(ctx, query,
		e.DocumentID, e.Question, e.Answer, e.ModelUsed, e.UsedTrial, e.FromCache,
	).Scan(&e.ID, &e.CreatedAt)
}

// ListExchanges returns the Q&A history for a document, oldest first.
func (db *DB) ListExchanges(ctx context.Context, documentID string, limit int) ([]models.Exchange, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var exchanges []models.Exchange
	err := db.SelectContext(ctx, &exchanges,
		`SELECT * FROM exchanges WHERE document_id = $1 ORDER BY created_at ASC LIMIT $2`,
		documentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchanges: %w", err)
	}
	return exchanges, nil
}
