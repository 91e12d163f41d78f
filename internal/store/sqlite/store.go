// Package sqlite provides the SQLite-backed bookmark store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/gongyuapp/gongyu-server/internal/search"
	"github.com/gongyuapp/gongyu-server/internal/store"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store provides SQLite-backed persistence for bookmarks.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	search search.Driver
}

// Open creates a new SQLite store at the given path.
// It configures WAL mode, sets pragmas, and runs schema migrations.
// The full-text index is set up best-effort; builds without the FTS5
// extension still work with degraded search.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Set connection pool to 1 writer (SQLite limitation).
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	// Run schema migration.
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
		search: search.NewSQLiteDriver(db),
	}

	if err := s.ensureSearchIndex(); err != nil {
		logger.Warn("full-text index unavailable, search will use LIKE scans", "error", err)
	}

	return s, nil
}

// Backend identifies the storage engine.
func (s *Store) Backend() store.Backend {
	return store.BackendSQLite
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSearchIndex creates the FTS5 table and its sync triggers if
// they do not exist yet.
func (s *Store) ensureSearchIndex() error {
	_, err := s.db.Exec(`CREATE VIRTUAL TABLE IF NOT EXISTS bookmarks_fts USING fts5(
		title, description, url,
		content='bookmarks',
		content_rowid='id'
	)`)
	if err != nil {
		return fmt.Errorf("create fts table: %w", err)
	}

	triggers := map[string]string{
		"bookmarks_fts_insert": `CREATE TRIGGER bookmarks_fts_insert AFTER INSERT ON bookmarks BEGIN
			INSERT INTO bookmarks_fts(rowid, title, description, url)
			VALUES (new.id, new.title, new.description, new.url);
		END`,
		"bookmarks_fts_delete": `CREATE TRIGGER bookmarks_fts_delete AFTER DELETE ON bookmarks BEGIN
			INSERT INTO bookmarks_fts(bookmarks_fts, rowid, title, description, url)
			VALUES ('delete', old.id, old.title, old.description, old.url);
		END`,
		"bookmarks_fts_update": `CREATE TRIGGER bookmarks_fts_update AFTER UPDATE ON bookmarks BEGIN
			INSERT INTO bookmarks_fts(bookmarks_fts, rowid, title, description, url)
			VALUES ('delete', old.id, old.title, old.description, old.url);
			INSERT INTO bookmarks_fts(rowid, title, description, url)
			VALUES (new.id, new.title, new.description, new.url);
		END`,
	}

	for name, ddl := range triggers {
		var existing string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'trigger' AND name = ?", name,
		).Scan(&existing)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check trigger %s: %w", name, err)
		}
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("create trigger %s: %w", name, err)
		}
	}

	return nil
}

// RebuildSearchIndex repopulates the FTS index from the bookmarks
// table. Used after bulk loads, where rebuilding once is cheaper than
// trigger-per-row maintenance.
func (s *Store) RebuildSearchIndex(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO bookmarks_fts(bookmarks_fts) VALUES ('rebuild')"); err != nil {
		return fmt.Errorf("rebuild fts index: %w", err)
	}
	return nil
}

// formatTime formats a time.Time to RFC3339Nano for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a RFC3339Nano string back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
