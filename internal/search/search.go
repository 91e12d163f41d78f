// Package search builds backend-specific SQL fragments for full-text
// bookmark queries. Each storage engine gets a Driver that turns a raw
// user query into the JOIN, WHERE, and ORDER BY pieces its dialect
// needs, so the stores can share one list query shape.
package search

import (
	"database/sql"
	"strings"
	"unicode"
)

// Clause holds the SQL fragments a driver contributes to a list query.
// The bookmarks table is aliased "b" in the host query.
type Clause struct {
	// Join is appended after the FROM clause. May be empty.
	Join string
	// Where is the filter predicate with positional placeholders.
	Where string
	// OrderBy overrides the default recency ordering. Empty means keep
	// the host query's own ordering.
	OrderBy string
	// Args are the values bound to Where's placeholders.
	Args []any
}

// Driver turns a user search query into SQL fragments for one dialect.
type Driver interface {
	// Clause returns the fragments for the given query. ok is false when
	// the query is empty or whitespace and no filtering should happen.
	Clause(query string) (Clause, bool)
}

// ForBackend returns the search driver for a storage backend. The db
// handle is used by the SQLite driver to detect whether the FTS index
// is available; the Postgres driver ignores it.
func ForBackend(backend string, db *sql.DB) Driver {
	if backend == "postgres" {
		return &PostgresDriver{}
	}
	return &SQLiteDriver{db: db}
}

// tokenize splits a query into search terms. Punctuation is stripped
// from each term so user input can never change the query structure.
func tokenize(query string) []string {
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		var b strings.Builder
		for _, r := range f {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
		}
	}
	return tokens
}

// matchNothing is the predicate used when a non-empty query has no
// usable terms. It filters every row out rather than returning the
// unfiltered list for a query like "???".
const matchNothing = "1 = 0"
