package draw

import (
	"testing"
	"time"

	"sharefm/core/session"
	"sharefm/model"
	"sharefm/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSelector(t *testing.T) (*Selector, *repository.MemoryEntryRepository) {
	t.Helper()
	entries := repository.NewMemoryEntryRepository()
	sessions := repository.NewMemorySessionRepository()
	return NewSelector(entries, session.NewManager(sessions, entries)), entries
}

func seed(t *testing.T, entries *repository.MemoryEntryRepository, id, title string, artists ...string) {
	t.Helper()
	require.NoError(t, entries.Create(&model.CatalogEntry{
		ID:      id,
		Path:    "/music/" + id + ".mp3",
		Title:   title,
		Artists: artists,
	}))
}

func TestDrawIssuesSessionForMatch(t *testing.T) {
	selector, entries := newTestSelector(t)
	seed(t, entries, "a", "Song A", "X", "Y")

	sess, entry, err := selector.Draw(model.Filters{}, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "a", entry.ID)
	assert.Equal(t, "a", sess.EntryID)
	assert.True(t, time.Now().Before(sess.ExpiresAt))
}

func TestDrawEmptyCatalog(t *testing.T) {
	selector, _ := newTestSelector(t)
	_, _, err := selector.Draw(model.Filters{}, time.Minute)
	assert.ErrorIs(t, err, model.ErrNoMatch)
}

func TestDrawArtistFilter(t *testing.T) {
	selector, entries := newTestSelector(t)
	// "X/Y" split at scan time into ["X", "Y"].
	seed(t, entries, "a", "Song A", "X", "Y")
	seed(t, entries, "b", "Song B", "Z")

	// The filter must only ever return the matching entry.
	for i := 0; i < 20; i++ {
		_, entry, err := selector.Draw(model.Filters{Artist: "Y"}, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, "Song A", entry.Title)
	}

	_, _, err := selector.Draw(model.Filters{Artist: "nomatch"}, time.Minute)
	assert.ErrorIs(t, err, model.ErrNoMatch)
}

func TestDrawTitleFilterCaseInsensitive(t *testing.T) {
	selector, entries := newTestSelector(t)
	seed(t, entries, "a", "Foobar", "X")
	seed(t, entries, "b", "Other", "X")

	for i := 0; i < 20; i++ {
		_, entry, err := selector.Draw(model.Filters{Title: "FOO"}, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, "Foobar", entry.Title)
	}
}

func TestDrawFilterSanitization(t *testing.T) {
	selector, entries := newTestSelector(t)
	seed(t, entries, "a", "Song A", "X")

	// Quotes and path separators are stripped before matching.
	_, entry, err := selector.Draw(model.Filters{Title: `"Song/ A'`}, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "Song A", entry.Title)
}

func TestDrawDistributionCoversCatalog(t *testing.T) {
	selector, entries := newTestSelector(t)
	seed(t, entries, "a", "Song A", "X")
	seed(t, entries, "b", "Song B", "Y")
	seed(t, entries, "c", "Song C", "Z")

	counts := make(map[string]int)
	for i := 0; i < 300; i++ {
		_, entry, err := selector.Draw(model.Filters{}, time.Minute)
		require.NoError(t, err)
		counts[entry.ID]++
	}

	// No entry may be systematically excluded or overwhelmingly favored.
	require.Len(t, counts, 3)
	for id, n := range counts {
		assert.Greater(t, n, 30, "entry %s drawn too rarely", id)
	}
}
