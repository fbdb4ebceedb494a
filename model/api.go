package model

import "strings"

// Filters are optional case-insensitive substring predicates applied to a
// draw. An entry matches only if every non-empty filter matches.
type Filters struct {
	Title  string
	Album  string
	Artist string
}

// filterCutset holds characters stripped from filter values before they
// reach query construction: quotes and path separators.
const filterCutset = "\"'`/\\"

func sanitizeFilter(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(filterCutset, r) {
			return -1
		}
		return r
	}, s)
}

// Sanitized returns a copy of the filters with unsafe characters removed.
func (f Filters) Sanitized() Filters {
	return Filters{
		Title:  sanitizeFilter(f.Title),
		Album:  sanitizeFilter(f.Album),
		Artist: sanitizeFilter(f.Artist),
	}
}

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return f.Title == "" && f.Album == "" && f.Artist == ""
}

// Match evaluates the filters against an entry, case-insensitively. The
// artist filter matches against both artists and album artists.
func (f Filters) Match(e *CatalogEntry) bool {
	if f.Title != "" && !containsFold(e.Title, f.Title) {
		return false
	}
	if f.Album != "" && !containsFold(e.Album, f.Album) {
		return false
	}
	if f.Artist != "" && !anyContainsFold(e.Artists, f.Artist) && !anyContainsFold(e.AlbumArtists, f.Artist) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContainsFold(values []string, needle string) bool {
	for _, v := range values {
		if containsFold(v, needle) {
			return true
		}
	}
	return false
}

// DrawResponse is returned by a successful /draw call: the entry's metadata
// plus the freshly minted session and its redemption URLs.
type DrawResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Album        string   `json:"album"`
	Artists      []string `json:"artists"`
	AlbumArtists []string `json:"albumartists"`
	Duration     float64  `json:"duration"`
	Filename     string   `json:"filename"`
	Session      string   `json:"session"`
	ExpiresAt    int64    `json:"expiresAt"`
	Href         string   `json:"href"`
	ImageURL     string   `json:"image"`
	LyricsURL    string   `json:"lyrics"`
	MetadataURL  string   `json:"metadata"`
}

// StatusResponse is returned by /status.
type StatusResponse struct {
	Status string  `json:"status"` // running or paused
	Count  int64   `json:"count"`
	Online float64 `json:"online"` // seconds since process start
	Time   float64 `json:"time"`   // current Unix seconds
}

// ScanResponse is returned by /scan with the counts of the completed pass.
type ScanResponse struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

// ErrorResponse is the JSON body of every failure response. Error carries
// the machine-readable kind, Message a human-readable detail.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
