// Package postgres provides the PostgreSQL-backed bookmark store.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/gongyuapp/gongyu-server/internal/search"
	"github.com/gongyuapp/gongyu-server/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// Store provides PostgreSQL-backed persistence for bookmarks.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	search search.Driver
}

// Open connects to PostgreSQL with the given DSN and runs schema
// migrations.
func Open(dsn string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger,
		search: &search.PostgresDriver{},
	}, nil
}

// Backend identifies the storage engine.
func (s *Store) Backend() store.Backend {
	return store.BackendPostgres
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RebuildSearchIndex is a no-op; the search_vector trigger keeps the
// index current on every write, bulk loads included.
func (s *Store) RebuildSearchIndex(_ context.Context) error {
	return nil
}

// mapConstraintError translates PostgreSQL unique violations into
// store sentinel errors.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}

	switch pgErr.ConstraintName {
	case "bookmarks_url_key":
		return store.ErrURLExists
	case "bookmarks_short_url_key":
		return store.ErrShortURLExists
	default:
		return err
	}
}
