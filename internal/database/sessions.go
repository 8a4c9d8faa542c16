// sessions.go handles the per-session trial quota records.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/BalasaitejaG/Pdf-AI/internal/models"
)

// GetOrCreateSession returns the quota record for a session id, inserting a
// fresh one (zero questions used, no custom key) if none exists yet.
// Absence is not an error — every session id is implicitly valid.
//
// The INSERT uses ON CONFLICT DO NOTHING so two first requests racing for the
// same session id both succeed; the loser of the insert re-reads the row.
func (db *DB) GetOrCreateSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var s models.Session
	err := db.GetContext(ctx, &s, `SELECT * FROM sessions WHERE id = $1`, sessionID)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO sessions (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := db.GetContext(ctx, &s, `SELECT * FROM sessions WHERE id = $1`, sessionID); err != nil {
		return nil, fmt.Errorf("failed to load created session: %w", err)
	}
	return &s, nil
}

// RecordTrialUsage increments the trial question counter by exactly one.
//
// The increment happens inside the UPDATE statement, not as a read-then-write
// in Go — concurrent requests from multiple tabs cannot lose updates.
func (db *DB) RecordTrialUsage(ctx context.Context, sessionID string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE sessions
		 SET trial_questions_used = trial_questions_used + 1, updated_at = NOW()
		 WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to record trial usage: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

// SetCustomKey stores the sealed user-supplied provider key for a session.
// The trial counter is left untouched, and there is deliberately no way to
// clear the key — supplying one is a one-way transition for the session.
func (db *DB) SetCustomKey(ctx context.Context, sessionID, sealedKey string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE sessions SET custom_key = $2, updated_at = NOW() WHERE id = $1`,
		sessionID, sealedKey)
	if err != nil {
		return fmt.Errorf("failed to store custom key: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}
