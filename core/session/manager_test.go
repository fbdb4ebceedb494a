package session

import (
	"testing"
	"time"

	"sharefm/model"
	"sharefm/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *repository.MemoryEntryRepository, *repository.MemorySessionRepository) {
	t.Helper()
	entries := repository.NewMemoryEntryRepository()
	sessions := repository.NewMemorySessionRepository()
	return NewManager(sessions, entries), entries, sessions
}

func seedEntry(t *testing.T, entries *repository.MemoryEntryRepository, id, title string) *model.CatalogEntry {
	t.Helper()
	entry := &model.CatalogEntry{ID: id, Path: "/music/" + id + ".mp3", Title: title}
	require.NoError(t, entries.Create(entry))
	return entry
}

func TestIssueThenValidate(t *testing.T) {
	m, entries, _ := newTestManager(t)
	seedEntry(t, entries, "e1", "Song A")

	sess, err := m.Issue("e1", 5*time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "e1", sess.EntryID)

	entry, err := m.Validate(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Song A", entry.Title)
}

func TestValidateUnknownToken(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, err := m.Validate("no-such-token")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestValidateExpiredThenGone(t *testing.T) {
	m, entries, _ := newTestManager(t)
	seedEntry(t, entries, "e1", "Song A")

	sess, err := m.Issue("e1", -time.Second)
	require.NoError(t, err)

	// First validate sees the expired session and lazily deletes it.
	_, err = m.Validate(sess.ID)
	assert.ErrorIs(t, err, model.ErrExpired)

	// Second validate with the same token: the session no longer exists.
	_, err = m.Validate(sess.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestValidateEntryDeletedInInterim(t *testing.T) {
	m, entries, _ := newTestManager(t)
	entry := seedEntry(t, entries, "e1", "Song A")

	sess, err := m.Issue("e1", 5*time.Minute)
	require.NoError(t, err)

	require.NoError(t, entries.DeleteByPath(entry.Path))

	_, err = m.Validate(sess.ID)
	assert.ErrorIs(t, err, model.ErrNotFound, "sessions referencing a reconciled-away entry fail closed")
}

func TestValidateDoesNotExtendExpiry(t *testing.T) {
	m, entries, sessions := newTestManager(t)
	seedEntry(t, entries, "e1", "Song A")

	sess, err := m.Issue("e1", time.Minute)
	require.NoError(t, err)

	_, err = m.Validate(sess.ID)
	require.NoError(t, err)

	stored, err := sessions.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ExpiresAt, stored.ExpiresAt)
}

func TestSweepExpired(t *testing.T) {
	m, entries, _ := newTestManager(t)
	seedEntry(t, entries, "e1", "Song A")

	_, err := m.Issue("e1", -time.Second)
	require.NoError(t, err)
	_, err = m.Issue("e1", -time.Minute)
	require.NoError(t, err)
	live, err := m.Issue("e1", time.Hour)
	require.NoError(t, err)

	count, err := m.SweepExpired()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	_, err = m.Validate(live.ID)
	assert.NoError(t, err)
}
