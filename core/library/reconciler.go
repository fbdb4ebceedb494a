package library

import (
	"fmt"
	"sync"
	"time"

	"sharefm/logger"
	"sharefm/model"
	"sharefm/repository"

	"github.com/google/uuid"
)

// Result holds the counts of one reconciliation pass.
type Result struct {
	Added   int
	Updated int
	Deleted int
}

// Reconciler diffs the filesystem tree against the persisted catalog and
// applies the difference per item. Passes are serialized by a shared lock;
// a second caller blocks until the running pass completes. The maintenance
// gate is held for the duration of a pass and released on every exit path.
type Reconciler struct {
	entries repository.EntryRepository
	meta    *MetadataReader
	gate    *Gate
	root    string
	mu      sync.Mutex
}

// NewReconciler creates a Reconciler over the given catalog and library root.
func NewReconciler(entries repository.EntryRepository, meta *MetadataReader, gate *Gate, root string) *Reconciler {
	return &Reconciler{
		entries: entries,
		meta:    meta,
		gate:    gate,
		root:    NormalizePath(root),
	}
}

// Reconcile runs one full pass: walk, diff, apply. The pass is not
// transactional as a whole; each add/update/delete persists independently,
// and a rerun after an interruption repairs whatever was left undone.
func (r *Reconciler) Reconcile() (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gate.Pause()
	defer r.gate.Resume()

	start := time.Now()
	var res Result

	logger.Info("scanning music library", logger.String("root", r.root))

	onDisk, err := WalkLibrary(r.root)
	if err != nil {
		return res, fmt.Errorf("failed to walk library root %s: %w", r.root, err)
	}
	indexed, err := r.entries.PathIndex()
	if err != nil {
		return res, fmt.Errorf("failed to load catalog path index: %w", err)
	}

	var toAdd, toUpdate, toDelete []string
	for path, mtime := range onDisk {
		lastUpdate, ok := indexed[path]
		switch {
		case !ok:
			toAdd = append(toAdd, path)
		case mtime > lastUpdate:
			toUpdate = append(toUpdate, path)
		}
	}
	for path := range indexed {
		if _, ok := onDisk[path]; !ok {
			toDelete = append(toDelete, path)
		}
	}

	for _, path := range toAdd {
		meta := r.meta.Read(path)
		entry := &model.CatalogEntry{
			ID:           uuid.NewString(),
			Path:         path,
			Title:        meta.Title,
			Album:        meta.Album,
			Artists:      meta.Artists,
			AlbumArtists: meta.AlbumArtists,
			Duration:     meta.Duration,
			LastUpdate:   unixSeconds(time.Now()),
		}
		if err := r.entries.Create(entry); err != nil {
			logger.Error("failed to add catalog entry", logger.String("path", path), logger.ErrorField(err))
			continue
		}
		res.Added++
	}

	for _, path := range toUpdate {
		entry, err := r.entries.GetByPath(path)
		if err != nil || entry == nil {
			logger.Error("failed to load catalog entry for update", logger.String("path", path), logger.ErrorField(err))
			continue
		}
		meta := r.meta.Read(path)
		entry.Title = meta.Title
		entry.Album = meta.Album
		entry.Artists = meta.Artists
		entry.AlbumArtists = meta.AlbumArtists
		entry.Duration = meta.Duration
		entry.LastUpdate = unixSeconds(time.Now())
		if err := r.entries.Update(entry); err != nil {
			logger.Error("failed to update catalog entry", logger.String("path", path), logger.ErrorField(err))
			continue
		}
		res.Updated++
	}

	for _, path := range toDelete {
		// Sessions referencing the entry are not cascaded; they fail
		// closed on their next validate.
		if err := r.entries.DeleteByPath(path); err != nil {
			logger.Error("failed to delete catalog entry", logger.String("path", path), logger.ErrorField(err))
			continue
		}
		res.Deleted++
	}

	logger.Info("library scan complete",
		logger.Int("added", res.Added),
		logger.Int("updated", res.Updated),
		logger.Int("deleted", res.Deleted),
		logger.Duration("took", time.Since(start)),
	)
	return res, nil
}
