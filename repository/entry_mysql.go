package repository

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"sharefm/logger"
	"sharefm/model"
)

const entryColumns = "id, path, title, album, artists, albumartists, duration, last_update"

// mysqlEntryRepository implements EntryRepository for MySQL.
type mysqlEntryRepository struct {
	DB *sql.DB
}

// NewMySQLEntryRepository creates a new instance of mysqlEntryRepository.
func NewMySQLEntryRepository(db *sql.DB) EntryRepository {
	return &mysqlEntryRepository{DB: db}
}

func scanEntry(row interface{ Scan(dest ...any) error }) (*model.CatalogEntry, error) {
	entry := &model.CatalogEntry{}
	var title, album sql.NullString
	var artists, albumartists []byte
	err := row.Scan(&entry.ID, &entry.Path, &title, &album, &artists, &albumartists, &entry.Duration, &entry.LastUpdate)
	if err != nil {
		return nil, err
	}
	entry.Title = title.String
	entry.Album = album.String
	if len(artists) > 0 {
		if err := json.Unmarshal(artists, &entry.Artists); err != nil {
			return nil, fmt.Errorf("failed to decode artists for entry %s: %w", entry.ID, err)
		}
	}
	if len(albumartists) > 0 {
		if err := json.Unmarshal(albumartists, &entry.AlbumArtists); err != nil {
			return nil, fmt.Errorf("failed to decode albumartists for entry %s: %w", entry.ID, err)
		}
	}
	return entry, nil
}

// encodeNames serializes a name list for a JSON text column. HTML escaping
// is disabled so names containing & < > are stored verbatim and stay
// matchable by the LIKE patterns RandomMatch builds against these columns.
func encodeNames(names []string) ([]byte, error) {
	if names == nil {
		names = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(names); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// GetByID retrieves an entry by its ID.
func (r *mysqlEntryRepository) GetByID(id string) (*model.CatalogEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ?`
	entry, err := scanEntry(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Entry not found
		}
		return nil, fmt.Errorf("failed to scan entry by ID %s: %w", id, err)
	}
	return entry, nil
}

// GetByPath retrieves an entry by its filesystem path.
func (r *mysqlEntryRepository) GetByPath(path string) (*model.CatalogEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE path = ?`
	entry, err := scanEntry(r.DB.QueryRow(query, path))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan entry by path %s: %w", path, err)
	}
	return entry, nil
}

// PathIndex returns the path -> last_update projection for all entries.
func (r *mysqlEntryRepository) PathIndex() (map[string]float64, error) {
	rows, err := r.DB.Query(`SELECT path, last_update FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("failed to query path index: %w", err)
	}
	defer rows.Close()

	index := make(map[string]float64)
	for rows.Next() {
		var path string
		var lastUpdate float64
		if err := rows.Scan(&path, &lastUpdate); err != nil {
			return nil, fmt.Errorf("failed to scan path index row: %w", err)
		}
		index[path] = lastUpdate
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during path index iteration: %w", err)
	}
	return index, nil
}

// ListAll retrieves every catalog entry.
func (r *mysqlEntryRepository) ListAll() ([]*model.CatalogEntry, error) {
	rows, err := r.DB.Query(`SELECT ` + entryColumns + ` FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*model.CatalogEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry in ListAll: %w", err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in ListAll: %w", err)
	}
	return entries, nil
}

// Create adds a new entry to the catalog.
func (r *mysqlEntryRepository) Create(entry *model.CatalogEntry) error {
	query := `INSERT INTO entries (id, path, title, album, artists, albumartists, duration, last_update)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.DB.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for Create: %w", err)
	}
	defer stmt.Close()

	artists, err := encodeNames(entry.Artists)
	if err != nil {
		return fmt.Errorf("failed to encode artists: %w", err)
	}
	albumartists, err := encodeNames(entry.AlbumArtists)
	if err != nil {
		return fmt.Errorf("failed to encode albumartists: %w", err)
	}

	_, err = stmt.Exec(entry.ID, entry.Path, entry.Title, entry.Album, artists, albumartists, entry.Duration, entry.LastUpdate)
	if err != nil {
		return fmt.Errorf("failed to execute Create for path %s: %w", entry.Path, err)
	}
	logger.Debug("entry created", logger.String("id", entry.ID), logger.String("path", entry.Path))
	return nil
}

// Update overwrites the metadata fields and watermark of an existing entry.
// The id and path are identity and never change here.
func (r *mysqlEntryRepository) Update(entry *model.CatalogEntry) error {
	query := `UPDATE entries SET title = ?, album = ?, artists = ?, albumartists = ?, duration = ?, last_update = ? WHERE id = ?`
	stmt, err := r.DB.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for Update: %w", err)
	}
	defer stmt.Close()

	artists, err := encodeNames(entry.Artists)
	if err != nil {
		return fmt.Errorf("failed to encode artists: %w", err)
	}
	albumartists, err := encodeNames(entry.AlbumArtists)
	if err != nil {
		return fmt.Errorf("failed to encode albumartists: %w", err)
	}

	_, err = stmt.Exec(entry.Title, entry.Album, artists, albumartists, entry.Duration, entry.LastUpdate, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to execute Update for entry %s: %w", entry.ID, err)
	}
	return nil
}

// DeleteByPath removes the entry indexed at the given path.
func (r *mysqlEntryRepository) DeleteByPath(path string) error {
	_, err := r.DB.Exec(`DELETE FROM entries WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("failed to delete entry for path %s: %w", path, err)
	}
	return nil
}

// Count returns the number of catalog entries.
func (r *mysqlEntryRepository) Count() (int64, error) {
	var count int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// escapeLike escapes LIKE wildcards in a filter value. Quote stripping has
// already happened upstream; parameter binding handles the rest.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func likePattern(s string) string {
	return "%" + strings.ToLower(escapeLike(s)) + "%"
}

// RandomMatch evaluates the filter predicates server-side and picks one
// matching row uniformly at random.
func (r *mysqlEntryRepository) RandomMatch(filters model.Filters) (*model.CatalogEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries`
	var args []any
	if !filters.Empty() {
		var conds []string
		if filters.Title != "" {
			conds = append(conds, "LOWER(title) LIKE ?")
			args = append(args, likePattern(filters.Title))
		}
		if filters.Album != "" {
			conds = append(conds, "LOWER(album) LIKE ?")
			args = append(args, likePattern(filters.Album))
		}
		if filters.Artist != "" {
			// Artists are stored as JSON arrays; a substring match against
			// the encoded form matches the artist filter semantics.
			conds = append(conds, "(LOWER(artists) LIKE ? OR LOWER(albumartists) LIKE ?)")
			pattern := likePattern(filters.Artist)
			args = append(args, pattern, pattern)
		}
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY RAND() LIMIT 1"

	entry, err := scanEntry(r.DB.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No entry satisfies the filters
		}
		return nil, fmt.Errorf("failed to scan random match: %w", err)
	}
	return entry, nil
}
