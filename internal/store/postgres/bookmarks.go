package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gongyuapp/gongyu-server/internal/domain"
	"github.com/gongyuapp/gongyu-server/internal/store"
)

// bookmarkColumns is the ordered list of columns selected in bookmark
// queries. Must match the scan order in scanBookmark. The table is
// always aliased "b" so search clauses can reference it.
const bookmarkColumns = `b.id, b.short_url, b.url, b.title, b.description,
	b.thumbnail_url, b.shaarli_short_url, b.created_at, b.updated_at`

// scanBookmark scans a sql.Row (or sql.Rows via its Scan method) into a domain.Bookmark.
func scanBookmark(scanner interface{ Scan(dest ...any) error }) (*domain.Bookmark, error) {
	var b domain.Bookmark
	err := scanner.Scan(
		&b.ID,
		&b.ShortURL,
		&b.URL,
		&b.Title,
		&b.Description,
		&b.ThumbnailURL,
		&b.ShaarliShortURL,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBookmark inserts a new bookmark and fills in its ID.
func (s *Store) CreateBookmark(ctx context.Context, b *domain.Bookmark) error {
	err := s.db.QueryRowContext(ctx, `INSERT INTO bookmarks
		(short_url, url, title, description, thumbnail_url, shaarli_short_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		b.ShortURL, b.URL, b.Title, b.Description, b.ThumbnailURL, b.ShaarliShortURL,
		b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		return mapConstraintError(err)
	}
	return nil
}

// GetBookmark fetches a bookmark by numeric ID.
func (s *Store) GetBookmark(ctx context.Context, id int64) (*domain.Bookmark, error) {
	return s.getBookmark(ctx, "b.id = $1", id)
}

// GetBookmarkByShortURL fetches a bookmark by its short key.
func (s *Store) GetBookmarkByShortURL(ctx context.Context, shortURL string) (*domain.Bookmark, error) {
	return s.getBookmark(ctx, "b.short_url = $1", shortURL)
}

// GetBookmarkByURL fetches a bookmark by its exact URL.
func (s *Store) GetBookmarkByURL(ctx context.Context, url string) (*domain.Bookmark, error) {
	return s.getBookmark(ctx, "b.url = $1", url)
}

func (s *Store) getBookmark(ctx context.Context, where string, arg any) (*domain.Bookmark, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+bookmarkColumns+" FROM bookmarks b WHERE "+where, arg)

	b, err := scanBookmark(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrBookmarkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark: %w", err)
	}
	return b, nil
}

// UpdateBookmark persists changes to an existing bookmark.
func (s *Store) UpdateBookmark(ctx context.Context, b *domain.Bookmark) error {
	res, err := s.db.ExecContext(ctx, `UPDATE bookmarks SET
		short_url = $1, url = $2, title = $3, description = $4,
		thumbnail_url = $5, shaarli_short_url = $6, created_at = $7, updated_at = $8
		WHERE id = $9`,
		b.ShortURL, b.URL, b.Title, b.Description, b.ThumbnailURL, b.ShaarliShortURL,
		b.CreatedAt, b.UpdatedAt, b.ID,
	)
	if err != nil {
		return mapConstraintError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrBookmarkNotFound
	}
	return nil
}

// DeleteBookmark removes a bookmark by numeric ID.
func (s *Store) DeleteBookmark(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrBookmarkNotFound
	}
	return nil
}

// DeleteAllBookmarks removes every bookmark.
func (s *Store) DeleteAllBookmarks(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM bookmarks"); err != nil {
		return fmt.Errorf("delete all bookmarks: %w", err)
	}
	return nil
}

// ListBookmarks returns bookmarks newest-first, optionally filtered by
// a search query and paginated.
func (s *Store) ListBookmarks(ctx context.Context, opts store.ListOptions) ([]*domain.Bookmark, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + bookmarkColumns + " FROM bookmarks b")

	var args []any
	orderBy := "b.created_at DESC, b.id DESC"

	if clause, ok := s.search.Clause(opts.Query); ok {
		if clause.Join != "" {
			sb.WriteString(" " + clause.Join)
		}
		sb.WriteString(" WHERE " + clause.Where)
		args = append(args, clause.Args...)
		if clause.OrderBy != "" {
			orderBy = clause.OrderBy
		}
	}

	sb.WriteString(" ORDER BY " + orderBy)

	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []*domain.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// CountBookmarks returns the total number of stored bookmarks.
func (s *Store) CountBookmarks(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookmarks").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}
	return count, nil
}

// ExistingURLs returns the set of all stored bookmark URLs.
func (s *Store) ExistingURLs(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT url FROM bookmarks")
	if err != nil {
		return nil, fmt.Errorf("existing urls: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan url: %w", err)
		}
		urls[url] = true
	}
	return urls, rows.Err()
}

// ShortURLExists reports whether a short key is already taken.
func (s *Store) ShortURLExists(ctx context.Context, shortURL string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM bookmarks WHERE short_url = $1)", shortURL).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("short url exists: %w", err)
	}
	return exists, nil
}

// bulkChunkSize is the number of rows per INSERT statement during a
// bulk load, keeping bound parameters well under the protocol limit.
const bulkChunkSize = 500

// BulkCreateBookmarks inserts bookmarks in a single transaction using
// chunked multi-row INSERTs. Either all rows are inserted or none are.
func (s *Store) BulkCreateBookmarks(ctx context.Context, bookmarks []*domain.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for start := 0; start < len(bookmarks); start += bulkChunkSize {
		end := min(start+bulkChunkSize, len(bookmarks))
		chunk := bookmarks[start:end]

		var sb strings.Builder
		sb.WriteString(`INSERT INTO bookmarks
			(short_url, url, title, description, thumbnail_url, shaarli_short_url, created_at, updated_at)
			VALUES `)

		args := make([]any, 0, len(chunk)*8)
		for i, b := range chunk {
			if i > 0 {
				sb.WriteString(", ")
			}
			base := i * 8
			sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
			args = append(args,
				b.ShortURL, b.URL, b.Title, b.Description, b.ThumbnailURL, b.ShaarliShortURL,
				b.CreatedAt, b.UpdatedAt)
		}

		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return mapConstraintError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk insert: %w", err)
	}
	return nil
}
