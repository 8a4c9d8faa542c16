// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// There is no ORM magic here — the database package handles persistence
// with explicit SQL, and these structs are just data containers.
//
// JSON tags (e.g., `json:"id"`) control how struct fields are serialized
// to/from JSON. The `db` tags work with sqlx for database column mapping.
package models

import "time"

// DocumentStatus represents the processing state of an uploaded PDF.
// Go Pattern: We use string constants instead of enums (Go doesn't have enums).
type DocumentStatus string

const (
	StatusCompleted DocumentStatus = "completed"
	StatusFailed    DocumentStatus = "failed"
)

// Session is the per-browser quota record.
//
// ID is an opaque identifier minted by the session middleware. CustomKey
// holds the user's own provider key, sealed at rest — a pointer so NULL in
// the database maps to "no custom key". Once set it is never cleared, and
// the trial counter only ever goes up.
type Session struct {
	ID                 string    `json:"id" db:"id"`
	TrialQuestionsUsed int       `json:"trial_questions_used" db:"trial_questions_used"`
	CustomKey          *string   `json:"-" db:"custom_key"` // "-" = never serialize the sealed key
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// HasCustomKey reports whether the session has stored a personal provider key.
func (s *Session) HasCustomKey() bool {
	return s.CustomKey != nil && *s.CustomKey != ""
}

// Document represents an uploaded PDF and its extracted text.
type Document struct {
	ID           string         `json:"id" db:"id"`
	SessionID    string         `json:"-" db:"session_id"`
	OriginalName string         `json:"original_name" db:"original_name"`
	Filename     string         `json:"filename" db:"filename"`
	PageCount    int            `json:"page_count" db:"page_count"`
	WordCount    int            `json:"word_count" db:"word_count"`
	TextContent  string         `json:"-" db:"text_content"` // large; stored but not echoed to clients
	Status       DocumentStatus `json:"status" db:"status"`
	ErrorMessage string         `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// Exchange is one question/answer pair against a document.
type Exchange struct {
	ID         string    `json:"id" db:"id"`
	DocumentID string    `json:"document_id" db:"document_id"`
	Question   string    `json:"question" db:"question"`
	Answer     string    `json:"answer" db:"answer"`
	ModelUsed  string    `json:"model_used" db:"model_used"`
	UsedTrial  bool      `json:"used_trial" db:"used_trial"`
	FromCache  bool      `json:"from_cache" db:"from_cache"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// --- Request/Response DTOs ---
// Go Pattern: Separate structs for API input/output vs database models.
// This keeps the API contract independent of the database schema.

// AskRequest is the JSON body for POST /api/v1/documents/:id/ask.
// APIKey is the optional user-supplied provider key. A blank value means
// "no key supplied" — it never overrides a session's stored key.
type AskRequest struct {
	Question string `json:"question" binding:"required"`
	APIKey   string `json:"api_key,omitempty"`
}

// AskResponse is returned for a successful answer.
type AskResponse struct {
	Answer    string        `json:"answer"`
	ModelUsed string        `json:"model_used"`
	FromCache bool          `json:"from_cache"`
	Quota     SessionStatus `json:"quota"`
}

// SessionStatus reports the trial quota state for the current session.
type SessionStatus struct {
	TrialQuestionsUsed int  `json:"trial_questions_used"`
	TrialLimit         int  `json:"trial_limit"`
	HasCustomKey       bool `json:"has_custom_key"`
}

// ErrorResponse is a standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}
