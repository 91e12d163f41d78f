package search

import (
	"database/sql"
	"strings"
)

// SQLiteDriver builds clauses for the SQLite backend. It prefers the
// FTS5 index and falls back to LIKE scans when the index is missing,
// which happens on databases created before the index existed or when
// the SQLite build lacks the FTS5 extension.
type SQLiteDriver struct {
	db *sql.DB
}

// NewSQLiteDriver creates a driver probing the given database handle.
func NewSQLiteDriver(db *sql.DB) *SQLiteDriver {
	return &SQLiteDriver{db: db}
}

func (d *SQLiteDriver) Clause(query string) (Clause, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Clause{}, false
	}

	tokens := tokenize(query)
	if len(tokens) == 0 {
		return Clause{Where: matchNothing}, true
	}

	if d.ftsAvailable() {
		return Clause{
			Join:    "JOIN bookmarks_fts fts ON fts.rowid = b.id",
			Where:   "bookmarks_fts MATCH ?",
			OrderBy: "fts.rank",
			Args:    []any{ftsMatchExpr(tokens)},
		}, true
	}

	pattern := "%" + strings.ToLower(query) + "%"
	return Clause{
		Where: "(LOWER(b.title) LIKE ? OR LOWER(b.description) LIKE ? OR LOWER(b.url) LIKE ?)",
		Args:  []any{pattern, pattern, pattern},
	}, true
}

// ftsAvailable probes for the FTS index table. Probe failures are
// treated as "no index" so a broken index degrades to LIKE instead of
// failing the request.
func (d *SQLiteDriver) ftsAvailable() bool {
	if d.db == nil {
		return false
	}
	var name string
	err := d.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'bookmarks_fts'",
	).Scan(&name)
	return err == nil
}

// ftsMatchExpr builds an FTS5 MATCH expression from sanitized tokens.
// Each token is quoted and given a prefix wildcard, and all tokens must
// match.
func ftsMatchExpr(tokens []string) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = `"` + strings.ReplaceAll(tok, `"`, `""`) + `"*`
	}
	return strings.Join(parts, " AND ")
}
