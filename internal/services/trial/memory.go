// memory.go is an in-memory Store for tests and keyless local development.
package trial

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/BalasaitejaG/Pdf-AI/internal/models"
)

// MemoryStore is a mutex-guarded in-memory Store.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
	}
}

// GetOrCreateSession returns a copy of the session record, creating it if needed.
func (s *MemoryStore) GetOrCreateSession(_ context.Context, sessionID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		now := time.Now()
		sess = &models.Session{ID: sessionID, CreatedAt: now, UpdatedAt: now}
		s.sessions[sessionID] = sess
	}

	// Copy so callers can't mutate the stored record outside the lock.
	cp := *sess
	return &cp, nil
}

// RecordTrialUsage increments the trial counter under the lock.
func (s *MemoryStore) RecordTrialUsage(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session not found")
	}
	sess.TrialQuestionsUsed++
	sess.UpdatedAt = time.Now()
	return nil
}

// SetCustomKey stores the sealed key.
func (s *MemoryStore) SetCustomKey(_ context.Context, sessionID, sealedKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session not found")
	}
	sess.CustomKey = &sealedKey
	sess.UpdatedAt = time.Now()
	return nil
}
