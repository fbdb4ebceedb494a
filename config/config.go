package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store driver and session backend names accepted in the environment.
const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"

	SessionStoreDB    = "db"
	SessionStoreRedis = "redis"
)

// Config stores the application configuration, loaded once at startup.
type Config struct {
	ServerAddr  string
	LibraryRoot string // Root directory of the music library to index
	AccessToken string // Shared secret gating /draw, /scan, /status, /pause, /resume

	// Session TTL window in seconds. Requested expiries are clamped to
	// [MinExpires, MaxExpires]; DefaultExpires applies when unspecified
	// and also drives the sweep interval.
	DefaultExpires int
	MinExpires     int
	MaxExpires     int

	ScanInterval int  // Seconds between periodic scans, 0 = manual only
	WatchLibrary bool // Trigger a scan when the library changes on disk

	// Artist tag splitting: delimiters tried in priority order, and
	// substrings that contain a delimiter but must never be split.
	ArtistDelimiters    []string
	ArtistExclusions    []string
	ExclusionIgnoreCase bool

	StoreDriver  string // mysql or memory
	SessionStore string // db (same backend as the catalog) or redis

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList gets a "|"-separated environment variable as a string slice.
// The pipe separator keeps delimiters like "," and "/" usable as values.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var list []string
	for _, item := range strings.Split(value, "|") {
		if item != "" {
			list = append(list, item)
		}
	}
	return list
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// Attempt to load .env file. godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		LibraryRoot: getEnv("LIBRARY_ROOT", "music"),
		AccessToken: os.Getenv("ACCESS_TOKEN"), // No default: an empty token rejects everything

		DefaultExpires: getEnvInt("DEFAULT_EXPIRES", 300),
		MinExpires:     getEnvInt("MIN_EXPIRES", 30),
		MaxExpires:     getEnvInt("MAX_EXPIRES", 60*60*24),

		ScanInterval: getEnvInt("SCAN_INTERVAL", 0),
		WatchLibrary: getEnvBool("WATCH_LIBRARY", false),

		ArtistDelimiters:    getEnvList("ARTIST_DELIMITERS", []string{"/"}),
		ArtistExclusions:    getEnvList("ARTIST_EXCLUSIONS", nil),
		ExclusionIgnoreCase: getEnvBool("EXCLUSION_IGNORE_CASE", false),

		StoreDriver:  getEnv("STORE_DRIVER", StoreMySQL),
		SessionStore: getEnv("SESSION_STORE", SessionStoreDB),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "sharefm"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}

// ClampExpires clamps a requested session TTL (seconds) to the configured window.
func (c *Config) ClampExpires(seconds int) int {
	if seconds < c.MinExpires {
		return c.MinExpires
	}
	if seconds > c.MaxExpires {
		return c.MaxExpires
	}
	return seconds
}
