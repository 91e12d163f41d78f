package exporter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongyuapp/gongyu-server/internal/domain"
	"github.com/gongyuapp/gongyu-server/internal/parser/gongyu"
	"github.com/gongyuapp/gongyu-server/internal/parser/netscape"
)

func fixtureBookmarks() []*domain.Bookmark {
	created := time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC)
	return []*domain.Bookmark{
		{
			ID:              1,
			ShortURL:        "Ab3dE9xY",
			URL:             "https://example.com/a?x=1&y=2",
			Title:           `Quotes " & <Tags>`,
			Description:     "first & foremost",
			ShaarliShortURL: "WDWyig",
			CreatedAt:       created,
			UpdatedAt:       created.Add(time.Hour),
		},
		{
			ID:        2,
			ShortURL:  "Cd4fG0zW",
			URL:       "https://example.com/b",
			Title:     "Plain",
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

func TestNetscape(t *testing.T) {
	out := string(Netscape(fixtureBookmarks()))

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>"))
	assert.Contains(t, out, `HREF="https://example.com/a?x=1&amp;y=2"`)
	assert.Contains(t, out, `SHORTURL="Ab3dE9xY"`)
	assert.Contains(t, out, `SHAARLI_SHORTURL="WDWyig"`)
	assert.Contains(t, out, `ADD_DATE="1686825000"`)
	assert.Contains(t, out, "Quotes &#34; &amp; &lt;Tags&gt;</A>")
	assert.Contains(t, out, "<DD>first &amp; foremost")

	// Unedited bookmarks carry no LAST_MODIFIED; edited ones do.
	assert.Equal(t, 1, strings.Count(out, "LAST_MODIFIED="))

	// Raw values must never leak into the markup.
	assert.NotContains(t, out, `<Tags>`)
}

func TestNetscape_RoundTrip(t *testing.T) {
	records := netscape.Parse(Netscape(fixtureBookmarks()))
	require.Len(t, records, 2)

	assert.Equal(t, "https://example.com/a?x=1&y=2", records[0].URL)
	assert.Equal(t, `Quotes " & <Tags>`, records[0].Title)
	assert.Equal(t, "first & foremost", records[0].Description)
	assert.Equal(t, "Ab3dE9xY", records[0].ShortURL)
	assert.Equal(t, "WDWyig", records[0].ShaarliShortURL)
}

func TestNetscape_Empty(t *testing.T) {
	out := string(Netscape(nil))
	assert.Contains(t, out, "<DL><p>")
	assert.Contains(t, out, "</DL><p>")
	assert.NotContains(t, out, "<DT>")
}

func TestJSON(t *testing.T) {
	data, err := JSON(fixtureBookmarks())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"version":"1"`)
	assert.Contains(t, out, `"count":2`)

	// Slashes and non-ASCII pass through unescaped.
	assert.Contains(t, out, "https://example.com/a?x=1&y=2")
	assert.NotContains(t, out, `\/`)
}

func TestJSON_RoundTrip(t *testing.T) {
	data, err := JSON(fixtureBookmarks())
	require.NoError(t, err)

	records, err := gongyu.Parse(data)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Ab3dE9xY", records[0].ShortURL)
	assert.Equal(t, "WDWyig", records[0].ShaarliShortURL)
	assert.True(t, fixtureBookmarks()[0].CreatedAt.Equal(records[0].CreatedAt))
}

func TestJSON_EmptyCollection(t *testing.T) {
	data, err := JSON(nil)
	require.NoError(t, err)

	records, err := gongyu.Parse(data)
	require.NoError(t, err)
	assert.Empty(t, records)
}
