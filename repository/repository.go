package repository

import (
	"time"

	"sharefm/model"
)

// EntryRepository defines the record-store interface for catalog entries.
// Lookups return (nil, nil) when the row does not exist.
type EntryRepository interface {
	GetByID(id string) (*model.CatalogEntry, error)
	GetByPath(path string) (*model.CatalogEntry, error)
	// PathIndex returns the path -> lastUpdate projection used by the
	// reconciler for change detection.
	PathIndex() (map[string]float64, error)
	ListAll() ([]*model.CatalogEntry, error)
	Create(entry *model.CatalogEntry) error
	Update(entry *model.CatalogEntry) error
	DeleteByPath(path string) error
	Count() (int64, error)
	// RandomMatch picks a uniformly random entry among those matching the
	// filters, or (nil, nil) when nothing matches.
	RandomMatch(filters model.Filters) (*model.CatalogEntry, error)
}

// SessionRepository defines the record-store interface for access sessions.
type SessionRepository interface {
	Create(session *model.AccessSession) error
	Get(id string) (*model.AccessSession, error)
	Delete(id string) error
	// DeleteExpired removes every session with expiresAt <= now and
	// returns the number removed.
	DeleteExpired(now time.Time) (int64, error)
}
