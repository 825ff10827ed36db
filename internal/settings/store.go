// Package settings persists API credentials and user preferences in a local
// SQLite key/value store. The store is injected explicitly into whatever
// needs it; nothing reads ambient global state.
package settings

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claude/plansync/internal/models"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Well-known setting keys.
const (
	KeyIntervalsAPIKey = "intervals_api_key"
	KeyAthleteID       = "intervals_athlete_id"
	KeyGeminiAPIKey    = "gemini_api_key"

	keyPreferences = "preferences"
)

// Store is a SQLite-backed key/value settings store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the settings database at dir/settings.db and
// applies any pending schema migrations.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating settings dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "settings.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening settings db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating settings db: %w", err)
	}

	return &Store{db: db}, nil
}

// runMigrations applies the embedded migration files.
func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	drv, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Get returns the value for a key, or "" when unset.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, nil
}

// Set stores a value under a key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

// Preferences returns the saved user preferences, falling back to defaults
// when nothing has been saved or the stored blob does not parse.
func (s *Store) Preferences() (models.Preferences, error) {
	raw, err := s.Get(keyPreferences)
	if err != nil {
		return models.DefaultPreferences(), err
	}
	if raw == "" {
		return models.DefaultPreferences(), nil
	}
	var prefs models.Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return models.DefaultPreferences(), nil
	}
	return prefs, nil
}

// SetPreferences persists the preferences blob.
func (s *Store) SetPreferences(prefs models.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	return s.Set(keyPreferences, string(data))
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
