package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongyuapp/gongyu-server/internal/errors"
	"github.com/gongyuapp/gongyu-server/internal/store"
	"github.com/gongyuapp/gongyu-server/internal/store/sqlite"
	"github.com/gongyuapp/gongyu-server/internal/validation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func newBookmarkService(t *testing.T) *BookmarkService {
	t.Helper()
	return NewBookmarkService(newTestStore(t), validation.New(), testLogger())
}

func TestBookmarkService_Create(t *testing.T) {
	svc := newBookmarkService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateBookmarkInput{
		URL:         "https://example.com/article",
		Title:       "An Article",
		Description: "worth keeping",
	})
	require.NoError(t, err)
	assert.Len(t, b.ShortURL, 8)
	assert.NotZero(t, b.ID)
	assert.Equal(t, "An Article", b.Title)
	assert.True(t, b.UpdatedAt.Equal(b.CreatedAt))
}

func TestBookmarkService_Create_TitleFallsBackToURL(t *testing.T) {
	svc := newBookmarkService(t)

	b, err := svc.Create(context.Background(), CreateBookmarkInput{URL: "https://example.com/untitled"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/untitled", b.Title)
}

func TestBookmarkService_Create_Validation(t *testing.T) {
	svc := newBookmarkService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBookmarkInput{})
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = svc.Create(ctx, CreateBookmarkInput{URL: "not a url"})
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = svc.Create(ctx, CreateBookmarkInput{
		URL:   "https://example.com",
		Title: strings.Repeat("t", 501),
	})
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestBookmarkService_Create_DuplicateURL(t *testing.T) {
	svc := newBookmarkService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBookmarkInput{URL: "https://example.com/a"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateBookmarkInput{URL: "https://example.com/a"})
	assert.ErrorIs(t, err, errors.ErrAlreadyExists)
}

func TestBookmarkService_GetUpdateDelete(t *testing.T) {
	svc := newBookmarkService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBookmarkInput{URL: "https://example.com/a", Title: "Before"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ShortURL)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	newTitle := "After"
	updated, err := svc.Update(ctx, created.ShortURL, UpdateBookmarkInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, "https://example.com/a", updated.URL)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	require.NoError(t, svc.Delete(ctx, created.ShortURL))

	_, err = svc.Get(ctx, created.ShortURL)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestBookmarkService_Update_ClearedTitleFallsBackToURL(t *testing.T) {
	svc := newBookmarkService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBookmarkInput{URL: "https://example.com/a", Title: "Something"})
	require.NoError(t, err)

	empty := ""
	updated, err := svc.Update(ctx, created.ShortURL, UpdateBookmarkInput{Title: &empty})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", updated.Title)
}

func TestBookmarkService_Update_NotFound(t *testing.T) {
	svc := newBookmarkService(t)

	title := "x"
	_, err := svc.Update(context.Background(), "missing1", UpdateBookmarkInput{Title: &title})
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestBookmarkService_DeleteAll(t *testing.T) {
	svc := newBookmarkService(t)
	ctx := context.Background()

	for _, url := range []string{"https://example.com/a", "https://example.com/b"} {
		_, err := svc.Create(ctx, CreateBookmarkInput{URL: url})
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteAll(ctx))

	list, total, err := svc.List(ctx, ListBookmarksInput{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)
}

func TestBookmarkService_List(t *testing.T) {
	svc := newBookmarkService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBookmarkInput{URL: "https://example.com/go", Title: "Go Concurrency Patterns"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateBookmarkInput{URL: "https://example.com/cook", Title: "Cooking"})
	require.NoError(t, err)

	t.Run("empty query lists newest first", func(t *testing.T) {
		list, total, err := svc.List(ctx, ListBookmarksInput{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, list, 2)
		assert.Equal(t, "https://example.com/cook", list[0].URL)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		list, _, err := svc.List(ctx, ListBookmarksInput{Query: "CONCURRENCY"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "https://example.com/go", list[0].URL)
	})

	t.Run("limit is clamped", func(t *testing.T) {
		list, _, err := svc.List(ctx, ListBookmarksInput{Limit: 100000})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}
