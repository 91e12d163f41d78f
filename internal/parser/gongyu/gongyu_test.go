package gongyu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := `{
		"exported_at": "2023-06-20T12:00:00Z",
		"version": "1",
		"count": 2,
		"bookmarks": [
			{
				"id": 1,
				"url": "https://example.com/a",
				"title": "First",
				"description": "with details",
				"short_url": "Ab3dE9xY",
				"shaarli_short_url": "WDWyig",
				"created_at": "2023-06-15T10:30:00Z",
				"updated_at": "2023-06-16T08:00:00Z"
			},
			{
				"id": 2,
				"url": "https://example.com/b",
				"title": "Second",
				"short_url": "Cd4fG0zW",
				"created_at": "2023-06-17T09:00:00Z",
				"updated_at": "2023-06-17T09:00:00Z"
			}
		]
	}`

	records, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "https://example.com/a", first.URL)
	assert.Equal(t, "First", first.Title)
	assert.Equal(t, "with details", first.Description)
	assert.Equal(t, "Ab3dE9xY", first.ShortURL)
	assert.Equal(t, "WDWyig", first.ShaarliShortURL)
	assert.True(t, time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC).Equal(first.CreatedAt))
}

func TestParse_EmptyBookmarksArray(t *testing.T) {
	records, err := Parse([]byte(`{"bookmarks": []}`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParse_StructuralErrors(t *testing.T) {
	t.Run("not json", func(t *testing.T) {
		_, err := Parse([]byte("definitely not json"))
		assert.Error(t, err)
	})

	t.Run("top level array", func(t *testing.T) {
		_, err := Parse([]byte(`[{"url": "https://example.com"}]`))
		assert.Error(t, err)
	})

	t.Run("object without bookmarks", func(t *testing.T) {
		_, err := Parse([]byte(`{"count": 0}`))
		assert.ErrorIs(t, err, ErrNoBookmarks)
	})
}
