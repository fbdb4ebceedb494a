package repository

import (
	"math/rand"
	"sync"
	"time"

	"sharefm/model"
)

// MemoryEntryRepository is an in-process EntryRepository, used by tests and
// the memory store driver. All methods return copies so callers never share
// mutable state with the store.
type MemoryEntryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*model.CatalogEntry
	byPath map[string]string // path -> id
	rng    *rand.Rand
}

// NewMemoryEntryRepository creates an empty in-memory entry store.
func NewMemoryEntryRepository() *MemoryEntryRepository {
	return &MemoryEntryRepository{
		byID:   make(map[string]*model.CatalogEntry),
		byPath: make(map[string]string),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func cloneEntry(e *model.CatalogEntry) *model.CatalogEntry {
	if e == nil {
		return nil
	}
	c := *e
	c.Artists = append([]string(nil), e.Artists...)
	c.AlbumArtists = append([]string(nil), e.AlbumArtists...)
	return &c
}

func (r *MemoryEntryRepository) GetByID(id string) (*model.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneEntry(r.byID[id]), nil
}

func (r *MemoryEntryRepository) GetByPath(path string) (*model.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPath[path]
	if !ok {
		return nil, nil
	}
	return cloneEntry(r.byID[id]), nil
}

func (r *MemoryEntryRepository) PathIndex() (map[string]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	index := make(map[string]float64, len(r.byPath))
	for path, id := range r.byPath {
		index[path] = r.byID[id].LastUpdate
	}
	return index, nil
}

func (r *MemoryEntryRepository) ListAll() ([]*model.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]*model.CatalogEntry, 0, len(r.byID))
	for _, e := range r.byID {
		entries = append(entries, cloneEntry(e))
	}
	return entries, nil
}

func (r *MemoryEntryRepository) Create(entry *model.CatalogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[entry.ID] = cloneEntry(entry)
	r.byPath[entry.Path] = entry.ID
	return nil
}

func (r *MemoryEntryRepository) Update(entry *model.CatalogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byID[entry.ID]; ok {
		clone := cloneEntry(entry)
		clone.Path = existing.Path // identity fields never change on update
		r.byID[entry.ID] = clone
	}
	return nil
}

func (r *MemoryEntryRepository) DeleteByPath(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byPath[path]; ok {
		delete(r.byID, id)
		delete(r.byPath, path)
	}
	return nil
}

func (r *MemoryEntryRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}

func (r *MemoryEntryRepository) RandomMatch(filters model.Filters) (*model.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matches []*model.CatalogEntry
	for _, e := range r.byID {
		if filters.Match(e) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return cloneEntry(matches[r.rng.Intn(len(matches))]), nil
}

// MemorySessionRepository is an in-process SessionRepository.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]model.AccessSession
}

// NewMemorySessionRepository creates an empty in-memory session store.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]model.AccessSession)}
}

func (r *MemorySessionRepository) Create(session *model.AccessSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

func (r *MemorySessionRepository) Get(id string) (*model.AccessSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *MemorySessionRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *MemorySessionRepository) DeleteExpired(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for id, s := range r.sessions {
		if s.ExpiredAt(now) {
			delete(r.sessions, id)
			count++
		}
	}
	return count, nil
}
