// Package session issues, validates, and expires the access sessions that
// gate file redemption.
package session

import (
	"fmt"
	"time"

	"sharefm/logger"
	"sharefm/model"
	"sharefm/repository"

	"github.com/google/uuid"
)

// Manager owns the session lifecycle. The periodic sweep is a memory-bound
// cleanup; correctness comes from the lazy expiry check in Validate, which
// holds even if the sweep never runs.
type Manager struct {
	sessions repository.SessionRepository
	entries  repository.EntryRepository
}

// NewManager creates a Manager over the given stores.
func NewManager(sessions repository.SessionRepository, entries repository.EntryRepository) *Manager {
	return &Manager{sessions: sessions, entries: entries}
}

// Issue mints a fresh unguessable token bound to one catalog entry. The ttl
// must already be clamped to the configured window by the caller.
func (m *Manager) Issue(entryID string, ttl time.Duration) (*model.AccessSession, error) {
	session := &model.AccessSession{
		ID:        uuid.NewString(),
		EntryID:   entryID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := m.sessions.Create(session); err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}
	return session, nil
}

// Validate resolves a token to its catalog entry. An absent token fails
// ErrNotFound; an expired one is deleted and fails ErrExpired, so a retry
// with the same token fails ErrNotFound. Validation never extends expiry.
// The entry may have been deleted by a scan in the interim, which also
// fails ErrNotFound.
func (m *Manager) Validate(token string) (*model.CatalogEntry, error) {
	session, err := m.sessions.Get(token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return nil, model.ErrNotFound
	}
	if session.ExpiredAt(time.Now()) {
		if err := m.sessions.Delete(token); err != nil {
			logger.Warn("failed to delete expired session", logger.String("session", token), logger.ErrorField(err))
		}
		return nil, model.ErrExpired
	}
	entry, err := m.entries.GetByID(session.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session entry: %w", err)
	}
	if entry == nil {
		return nil, model.ErrNotFound
	}
	return entry, nil
}

// SweepExpired deletes all sessions past their expiry and returns the count.
func (m *Manager) SweepExpired() (int64, error) {
	count, err := m.sessions.DeleteExpired(time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired sessions: %w", err)
	}
	if count > 0 {
		logger.Info("cleared expired sessions", logger.Int64("count", count))
	}
	return count, nil
}
