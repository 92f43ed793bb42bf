// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is how set and weigh-in timestamps are stored: wall-clock time in
// the application's reference timezone, without offset, so TEXT ordering,
// date() bucketing, and strftime() grouping all agree with the user's day.
const timeLayout = "2006-01-02 15:04:05"

// DB wraps the SQLite database connection. All timestamps are interpreted in
// the reference location supplied at Open.
type DB struct {
	db     *sql.DB
	dbPath string
	loc    *time.Location
}

// Open opens or creates a SQLite database at the given path. Timestamps read
// back from the database are interpreted in loc.
func Open(dbPath string, loc *time.Location) (*DB, error) {
	if loc == nil {
		loc = time.Local
	}

	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &DB{db: db, dbPath: dbPath, loc: loc}

	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if err := d.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return d, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "repbot")
}

// DefaultDBPath returns the default database path following XDG spec.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "repbot.db")
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// configurePragmas sets up SQLite for optimal performance.
func (d *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// formatTime renders a timestamp in the storage layout.
func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// parseTime reads a stored timestamp, interpreting it in the reference location.
func (d *DB) parseTime(s string) time.Time {
	t, err := time.ParseInLocation(timeLayout, s, d.loc)
	if err != nil {
		t, _ = time.Parse(time.RFC3339, s)
	}
	return t
}
