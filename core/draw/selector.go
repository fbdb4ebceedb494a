// Package draw picks a random catalog entry and binds it to a fresh access
// session.
package draw

import (
	"fmt"
	"time"

	"sharefm/core/session"
	"sharefm/model"
	"sharefm/repository"
)

// Selector performs filtered random draws. Filter values are sanitized
// before they reach query construction; the random pick itself happens in
// the record store.
type Selector struct {
	entries  repository.EntryRepository
	sessions *session.Manager
}

// NewSelector creates a Selector over the given catalog and session manager.
func NewSelector(entries repository.EntryRepository, sessions *session.Manager) *Selector {
	return &Selector{entries: entries, sessions: sessions}
}

// Draw selects a uniformly random entry matching the filters and issues a
// session for it with the given (pre-clamped) ttl. Fails ErrNoMatch when no
// entry satisfies every filter.
func (s *Selector) Draw(filters model.Filters, ttl time.Duration) (*model.AccessSession, *model.CatalogEntry, error) {
	entry, err := s.entries.RandomMatch(filters.Sanitized())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to draw from catalog: %w", err)
	}
	if entry == nil {
		return nil, nil, model.ErrNoMatch
	}
	sess, err := s.sessions.Issue(entry.ID, ttl)
	if err != nil {
		return nil, nil, err
	}
	return sess, entry, nil
}
