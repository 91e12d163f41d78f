package importer

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongyuapp/gongyu-server/internal/domain"
	"github.com/gongyuapp/gongyu-server/internal/store"
	"github.com/gongyuapp/gongyu-server/internal/store/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func newImporter(s store.Store) *Importer {
	return New(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestImport_BatchDeduplication(t *testing.T) {
	s := newTestStore(t)
	im := newImporter(s)
	ctx := context.Background()

	result, err := im.Import(ctx, []domain.ImportRecord{
		{URL: "https://example.com/a", Title: "First Occurrence"},
		{URL: "https://example.com/a", Title: "Duplicate"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	// First occurrence wins.
	saved, err := s.GetBookmarkByURL(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "First Occurrence", saved.Title)
}

func TestImport_StoreDeduplication(t *testing.T) {
	s := newTestStore(t)
	im := newImporter(s)
	ctx := context.Background()

	_, err := im.Import(ctx, []domain.ImportRecord{{URL: "https://example.com/a", Title: "Original"}})
	require.NoError(t, err)

	result, err := im.Import(ctx, []domain.ImportRecord{
		{URL: "https://example.com/b", Title: "New"},
		{URL: "https://example.com/a", Title: "Already Stored"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	count, err := s.CountBookmarks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestImport_MissingURL(t *testing.T) {
	s := newTestStore(t)
	im := newImporter(s)

	result, err := im.Import(context.Background(), []domain.ImportRecord{
		{Title: "no url"},
		{URL: "   ", Title: "blank url"},
		{URL: "https://example.com/ok", Title: "fine"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Zero(t, result.Skipped)
	assert.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "record 1")
}

func TestImport_EmptyInput(t *testing.T) {
	im := newImporter(newTestStore(t))

	result, err := im.Import(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, result.Errors)
}

// countingStore counts ExistingURLs calls to observe the fresh-store
// short-circuit.
type countingStore struct {
	store.Store
	existingURLCalls int
}

func (c *countingStore) ExistingURLs(ctx context.Context) (map[string]bool, error) {
	c.existingURLCalls++
	return c.Store.ExistingURLs(ctx)
}

func TestImport_FreshStoreSkipsExistingURLCheck(t *testing.T) {
	cs := &countingStore{Store: newTestStore(t)}
	im := newImporter(cs)
	ctx := context.Background()

	_, err := im.Import(ctx, []domain.ImportRecord{{URL: "https://example.com/a"}})
	require.NoError(t, err)
	assert.Zero(t, cs.existingURLCalls, "empty store must not scan existing URLs")

	_, err = im.Import(ctx, []domain.ImportRecord{{URL: "https://example.com/b"}})
	require.NoError(t, err)
	assert.Equal(t, 1, cs.existingURLCalls)
}

func TestImport_PreservesPreferredShortKey(t *testing.T) {
	s := newTestStore(t)
	im := newImporter(s)
	ctx := context.Background()

	_, err := im.Import(ctx, []domain.ImportRecord{
		{URL: "https://example.com/a", ShortURL: "Ab3dE9xY"},
	})
	require.NoError(t, err)

	saved, err := s.GetBookmarkByShortURL(ctx, "Ab3dE9xY")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", saved.URL)
}

func TestImport_OccupiedShortKeyGetsReplaced(t *testing.T) {
	s := newTestStore(t)
	im := newImporter(s)
	ctx := context.Background()

	_, err := im.Import(ctx, []domain.ImportRecord{
		{URL: "https://example.com/a", ShortURL: "Ab3dE9xY"},
		{URL: "https://example.com/b", ShortURL: "Ab3dE9xY"},
	})
	require.NoError(t, err)

	first, err := s.GetBookmarkByShortURL(ctx, "Ab3dE9xY")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", first.URL)

	second, err := s.GetBookmarkByURL(ctx, "https://example.com/b")
	require.NoError(t, err)
	assert.NotEqual(t, "Ab3dE9xY", second.ShortURL)
	assert.Len(t, second.ShortURL, 8)
}

func TestImport_DefaultsTitleAndTimestamps(t *testing.T) {
	s := newTestStore(t)
	im := newImporter(s)
	ctx := context.Background()

	created := time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC)
	_, err := im.Import(ctx, []domain.ImportRecord{
		{URL: "https://example.com/bare"},
		{URL: "https://example.com/dated", Title: "Dated", CreatedAt: created},
	})
	require.NoError(t, err)

	bare, err := s.GetBookmarkByURL(ctx, "https://example.com/bare")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/bare", bare.Title)
	assert.False(t, bare.CreatedAt.IsZero())
	assert.True(t, bare.UpdatedAt.Equal(bare.CreatedAt))

	dated, err := s.GetBookmarkByURL(ctx, "https://example.com/dated")
	require.NoError(t, err)
	assert.True(t, created.Equal(dated.CreatedAt))
	assert.True(t, created.Equal(dated.UpdatedAt), "updated defaults to created")
}

func TestImport_LargeBatchIsSearchable(t *testing.T) {
	s := newTestStore(t)
	im := newImporter(s)
	ctx := context.Background()

	records := make([]domain.ImportRecord, 0, 600)
	for i := range 600 {
		records = append(records, domain.ImportRecord{
			URL:   "https://example.com/page/" + string(rune('a'+i%26)) + "/" + time.Duration(i).String(),
			Title: "Batch Page",
		})
	}

	result, err := im.Import(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 600, result.Imported)

	found, err := s.ListBookmarks(ctx, store.ListOptions{Query: "batch", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, found, 10)
}
