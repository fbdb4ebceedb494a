package repository

import (
	"testing"
	"time"

	"sharefm/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEntryRepositoryCRUD(t *testing.T) {
	r := NewMemoryEntryRepository()

	entry := &model.CatalogEntry{
		ID:         "id1",
		Path:       "/music/a.mp3",
		Title:      "Song A",
		Artists:    []string{"X", "Y"},
		LastUpdate: 100,
	}
	require.NoError(t, r.Create(entry))

	got, err := r.GetByID("id1")
	require.NoError(t, err)
	assert.Equal(t, "Song A", got.Title)

	got, err = r.GetByPath("/music/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, "id1", got.ID)

	// Mutating a returned copy must not touch the store.
	got.Title = "mutated"
	again, err := r.GetByID("id1")
	require.NoError(t, err)
	assert.Equal(t, "Song A", again.Title)

	index, err := r.PathIndex()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"/music/a.mp3": 100}, index)

	entry.Title = "Song A2"
	entry.LastUpdate = 200
	require.NoError(t, r.Update(entry))
	got, err = r.GetByID("id1")
	require.NoError(t, err)
	assert.Equal(t, "Song A2", got.Title)
	assert.Equal(t, float64(200), got.LastUpdate)

	count, err := r.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, r.DeleteByPath("/music/a.mp3"))
	got, err = r.GetByID("id1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryEntryRepositoryRandomMatch(t *testing.T) {
	r := NewMemoryEntryRepository()
	require.NoError(t, r.Create(&model.CatalogEntry{ID: "a", Path: "/a.mp3", Title: "Alpha"}))
	require.NoError(t, r.Create(&model.CatalogEntry{ID: "b", Path: "/b.mp3", Title: "Beta"}))

	got, err := r.RandomMatch(model.Filters{Title: "alpha"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)

	got, err = r.RandomMatch(model.Filters{Title: "gamma"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySessionRepository(t *testing.T) {
	r := NewMemorySessionRepository()
	now := time.Now()

	require.NoError(t, r.Create(&model.AccessSession{ID: "s1", EntryID: "a", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, r.Create(&model.AccessSession{ID: "s2", EntryID: "a", ExpiresAt: now.Add(-time.Hour)}))

	got, err := r.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, "a", got.EntryID)

	missing, err := r.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	count, err := r.DeleteExpired(now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	gone, err := r.Get("s2")
	require.NoError(t, err)
	assert.Nil(t, gone)

	require.NoError(t, r.Delete("s1"))
	gone, err = r.Get("s1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
