package search

import "strings"

// PostgresDriver builds clauses for the PostgreSQL backend using the
// precomputed search_vector column and its GIN index.
type PostgresDriver struct{}

func (d *PostgresDriver) Clause(query string) (Clause, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Clause{}, false
	}

	tokens := tokenize(query)
	if len(tokens) == 0 {
		return Clause{Where: matchNothing}, true
	}

	return Clause{
		Where:   "b.search_vector @@ to_tsquery('english', $1)",
		OrderBy: "ts_rank(b.search_vector, to_tsquery('english', $1)) DESC, b.created_at DESC",
		Args:    []any{tsQueryExpr(tokens)},
	}, true
}

// tsQueryExpr joins sanitized tokens into a prefix-matching tsquery.
func tsQueryExpr(tokens []string) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok + ":*"
	}
	return strings.Join(parts, " & ")
}
