// store.go defines the persistence contract for per-session quota records.
package trial

import (
	"context"

	"github.com/BalasaitejaG/Pdf-AI/internal/models"
)

// Store persists trial usage and custom keys per session.
//
// Go Pattern: Accept interfaces, return structs. The resolver and the answer
// orchestrator depend on this narrow interface; *database.DB implements it in
// production and MemoryStore implements it for tests.
type Store interface {
	// GetOrCreateSession returns the session record, creating a fresh one
	// (zero questions used, no custom key) if none exists. Absence is not
	// an error.
	GetOrCreateSession(ctx context.Context, sessionID string) (*models.Session, error)

	// RecordTrialUsage increments the trial counter by exactly one. The
	// implementation must be an atomic read-modify-write so concurrent
	// requests for the same session cannot lose updates.
	RecordTrialUsage(ctx context.Context, sessionID string) error

	// SetCustomKey stores the sealed user key. It never clears an existing
	// key and leaves the trial counter untouched.
	SetCustomKey(ctx context.Context, sessionID, sealedKey string) error
}
