package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0644))
	return NormalizePath(path)
}

func TestWalkLibraryFindsAudioFiles(t *testing.T) {
	dir := t.TempDir()

	song := writeFile(t, dir, "artist/album/song.mp3")
	upper := writeFile(t, dir, "artist/track.FLAC")
	nested := writeFile(t, dir, "a/b/c/deep.ogg")
	writeFile(t, dir, "artist/album/cover.jpg")
	writeFile(t, dir, "notes.txt")

	found, err := WalkLibrary(dir)
	require.NoError(t, err)

	assert.Len(t, found, 3)
	assert.Contains(t, found, song)
	assert.Contains(t, found, upper) // extension match is case-insensitive
	assert.Contains(t, found, nested)

	for path, mtime := range found {
		info, err := os.Stat(filepath.FromSlash(path))
		require.NoError(t, err)
		assert.InDelta(t, float64(info.ModTime().UnixNano())/1e9, mtime, 0.001)
	}
}

func TestWalkLibraryMissingRoot(t *testing.T) {
	found, err := WalkLibrary(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestWalkLibraryEmptyRoot(t *testing.T) {
	found, err := WalkLibrary(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, found)
}
