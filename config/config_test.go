package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, 300, cfg.DefaultExpires)
	assert.Equal(t, 30, cfg.MinExpires)
	assert.Equal(t, 86400, cfg.MaxExpires)
	assert.Equal(t, 0, cfg.ScanInterval)
	assert.Equal(t, []string{"/"}, cfg.ArtistDelimiters)
	assert.Equal(t, StoreMySQL, cfg.StoreDriver)
	assert.Equal(t, SessionStoreDB, cfg.SessionStore)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ARTIST_DELIMITERS", "/|;|,")
	t.Setenv("ARTIST_EXCLUSIONS", "AC/DC|GG/Allin")
	t.Setenv("EXCLUSION_IGNORE_CASE", "true")
	t.Setenv("SCAN_INTERVAL", "600")
	t.Setenv("STORE_DRIVER", StoreMemory)
	t.Setenv("SESSION_STORE", SessionStoreRedis)
	t.Setenv("ACCESS_TOKEN", "hunter2")

	cfg := Load()
	assert.Equal(t, []string{"/", ";", ","}, cfg.ArtistDelimiters)
	assert.Equal(t, []string{"AC/DC", "GG/Allin"}, cfg.ArtistExclusions)
	assert.True(t, cfg.ExclusionIgnoreCase)
	assert.Equal(t, 600, cfg.ScanInterval)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
	assert.Equal(t, "hunter2", cfg.AccessToken)
}

func TestClampExpires(t *testing.T) {
	cfg := &Config{MinExpires: 30, MaxExpires: 3600}
	assert.Equal(t, 30, cfg.ClampExpires(1))
	assert.Equal(t, 30, cfg.ClampExpires(-5))
	assert.Equal(t, 300, cfg.ClampExpires(300))
	assert.Equal(t, 3600, cfg.ClampExpires(100000))
}
