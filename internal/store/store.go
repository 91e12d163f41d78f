// Package store defines the persistence interface for bookmarks and the
// backends that implement it.
package store

import (
	"context"

	"github.com/gongyuapp/gongyu-server/internal/domain"
)

// Backend identifies a storage engine.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// ListOptions controls pagination and filtering for ListBookmarks.
type ListOptions struct {
	// Query is an optional full-text search query. Empty means no filter.
	Query string
	// Limit caps the number of returned bookmarks. Zero means no limit.
	Limit int
	// Offset skips that many bookmarks from the start of the result.
	Offset int
}

// Store is the persistence interface for bookmarks.
//
// Implementations return ErrBookmarkNotFound, ErrURLExists, and
// ErrShortURLExists for the corresponding conditions so callers can
// branch with errors.Is.
type Store interface {
	// CreateBookmark inserts a new bookmark and fills in its ID.
	CreateBookmark(ctx context.Context, b *domain.Bookmark) error

	// GetBookmark fetches a bookmark by numeric ID.
	GetBookmark(ctx context.Context, id int64) (*domain.Bookmark, error)

	// GetBookmarkByShortURL fetches a bookmark by its short key.
	GetBookmarkByShortURL(ctx context.Context, shortURL string) (*domain.Bookmark, error)

	// GetBookmarkByURL fetches a bookmark by its exact URL.
	GetBookmarkByURL(ctx context.Context, url string) (*domain.Bookmark, error)

	// UpdateBookmark persists changes to an existing bookmark.
	UpdateBookmark(ctx context.Context, b *domain.Bookmark) error

	// DeleteBookmark removes a bookmark by numeric ID.
	DeleteBookmark(ctx context.Context, id int64) error

	// DeleteAllBookmarks removes every bookmark.
	DeleteAllBookmarks(ctx context.Context) error

	// ListBookmarks returns bookmarks newest-first, optionally filtered
	// by a search query and paginated.
	ListBookmarks(ctx context.Context, opts ListOptions) ([]*domain.Bookmark, error)

	// CountBookmarks returns the total number of stored bookmarks.
	CountBookmarks(ctx context.Context) (int64, error)

	// ExistingURLs returns the set of all stored bookmark URLs.
	ExistingURLs(ctx context.Context) (map[string]bool, error)

	// ShortURLExists reports whether a short key is already taken.
	ShortURLExists(ctx context.Context, shortURL string) (bool, error)

	// BulkCreateBookmarks inserts bookmarks in a single transaction.
	// Either all rows are inserted or none are.
	BulkCreateBookmarks(ctx context.Context, bookmarks []*domain.Bookmark) error

	// RebuildSearchIndex rebuilds any derived search structures after a
	// bulk load. Backends without such structures return nil.
	RebuildSearchIndex(ctx context.Context) error

	// Backend identifies the storage engine.
	Backend() Backend

	// Close releases the underlying database resources.
	Close() error
}
