// Package cache persists the serialized AppState in a local SQLite file
// under a single fixed key. It is the fallback source of truth across
// restarts whenever the remote store is unreachable, so every failure
// here degrades to defaults instead of surfacing.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/existflow/iplan/internal/logger"
	"github.com/existflow/iplan/internal/model"
)

const stateKey = "app_state"

// Cache wraps the SQLite-backed key-value store
type Cache struct {
	db *sql.DB
}

// DefaultPath returns the default cache path (~/.iplan/iplan.db)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".iplan", "iplan.db"), nil
}

// Open opens or creates the cache database
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS app_state (
		    key TEXT PRIMARY KEY,
		    value TEXT NOT NULL
		);`); err != nil {
		return nil, fmt.Errorf("failed to migrate cache: %w", err)
	}

	return &Cache{db: db}, nil
}

// OpenDefault opens the cache at the default path
func OpenDefault() (*Cache, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// LoadState returns the persisted state, or the default state when the
// cache is empty or unreadable. The persisted JSON is unmarshaled over
// the default value, so fields introduced after the snapshot was written
// keep their defaults instead of ending up zeroed.
func (c *Cache) LoadState() model.AppState {
	st := model.DefaultState()

	var raw string
	err := c.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, stateKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return st
	}
	if err != nil {
		logger.Warn("Could not load cached state", logger.F("error", err))
		return st
	}

	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		logger.Warn("Cached state is corrupt, using defaults", logger.F("error", err))
		return model.DefaultState()
	}
	return st
}

// SaveState persists the serialized state under the fixed key
func (c *Cache) SaveState(st model.AppState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	if _, err := c.db.Exec(`
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		stateKey, string(data),
	); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}
