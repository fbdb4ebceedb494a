package library

import (
	"os"
	"path/filepath"
	"strings"

	"sharefm/logger"
	"sharefm/model"

	"github.com/dhowden/tag"
)

// MetadataReader reads one audio file's embedded metadata into a normalized
// record. Artist fields are run through the splitter.
type MetadataReader struct {
	splitter *Splitter
}

// NewMetadataReader creates a MetadataReader using the given splitter.
func NewMetadataReader(splitter *Splitter) *MetadataReader {
	return &MetadataReader{splitter: splitter}
}

func rawField(value string) []string {
	if value == "" {
		return nil
	}
	return []string{value}
}

// Read extracts metadata from the file at path. A malformed or unsupported
// file yields a record with all fields at their defaults rather than an
// error: a single bad file must never abort a scan.
func (r *MetadataReader) Read(path string) model.Meta {
	var meta model.Meta

	f, err := os.Open(path)
	if err != nil {
		logger.Warn("could not open file for tag reading", logger.String("path", path), logger.ErrorField(err))
		return meta
	}
	defer f.Close()

	t, err := tag.ReadFrom(f)
	if err != nil {
		logger.Warn("could not parse audio metadata", logger.String("path", path), logger.ErrorField(err))
		return meta
	}

	meta.Title = t.Title()
	meta.Album = t.Album()
	meta.Artists = r.splitter.SplitField(rawField(t.Artist()))
	meta.AlbumArtists = r.splitter.SplitField(rawField(t.AlbumArtist()))
	// Duration is not available through the tag library; it stays at 0.

	return meta
}

// ReadCover extracts the embedded cover image from the file at path,
// returning the raw bytes and MIME type. Fetched on demand so the catalog
// row stays cheap.
func ReadCover(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	t, err := tag.ReadFrom(f)
	if err != nil {
		return nil, "", model.ErrUnreadable
	}
	pic := t.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, "", model.ErrNotFound
	}
	mime := pic.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	return pic.Data, mime, nil
}

// LyricsPath returns the path of the lyrics sidecar for an audio file: the
// same name with a .lrc extension.
func LyricsPath(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return strings.TrimSuffix(audioPath, ext) + ".lrc"
}
