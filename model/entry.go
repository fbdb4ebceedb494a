package model

// CatalogEntry represents one indexed audio file in the shared library.
type CatalogEntry struct {
	ID           string   `json:"id"`
	Path         string   `json:"-"` // Absolute normalized path, never exposed in the API
	Title        string   `json:"title"`
	Album        string   `json:"album"`
	Artists      []string `json:"artists"`
	AlbumArtists []string `json:"albumartists"`
	Duration     float64  `json:"duration"`   // Duration in seconds, 0 if unknown
	LastUpdate   float64  `json:"lastUpdate"` // Unix seconds of the last successful metadata read
}

// Meta is the normalized result of reading one file's embedded tags.
// Missing or unreadable tags leave the zero values in place.
type Meta struct {
	Title        string
	Album        string
	Artists      []string
	AlbumArtists []string
	Duration     float64
}
