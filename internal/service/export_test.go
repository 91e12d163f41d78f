package service

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongyuapp/gongyu-server/internal/errors"
	"github.com/gongyuapp/gongyu-server/internal/validation"
)

func TestExportService(t *testing.T) {
	s := newTestStore(t)
	bookmarks := NewBookmarkService(s, validation.New(), testLogger())
	exports := NewExportService(s, testLogger())
	ctx := context.Background()

	_, err := bookmarks.Create(ctx, CreateBookmarkInput{URL: "https://example.com/a", Title: "Saved"})
	require.NoError(t, err)

	t.Run("html is the default", func(t *testing.T) {
		file, err := exports.Export(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "text/html; charset=utf-8", file.ContentType)
		assert.Regexp(t, regexp.MustCompile(`^bookmarks_\d{8}_\d{6}\.html$`), file.Filename)
		assert.True(t, strings.HasPrefix(string(file.Content), "<!DOCTYPE NETSCAPE-Bookmark-file-1>"))
		assert.Contains(t, string(file.Content), "https://example.com/a")
	})

	t.Run("json", func(t *testing.T) {
		file, err := exports.Export(ctx, FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "application/json", file.ContentType)
		assert.Regexp(t, regexp.MustCompile(`^bookmarks_\d{8}_\d{6}\.json$`), file.Filename)
		assert.Contains(t, string(file.Content), `"version":"1"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := exports.Export(ctx, "xml")
		assert.ErrorIs(t, err, errors.ErrValidation)
	})
}
