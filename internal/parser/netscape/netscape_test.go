package netscape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
<DT><A HREF="https://go.dev/blog" ADD_DATE="1686825000">The Go Blog</A>
<DD>Official Go project blog
<DT><A HREF="https://example.com/plain" ADD_DATE="1686825060">Plain Entry</A>
</DL><p>
`

func TestParse(t *testing.T) {
	records := Parse([]byte(sampleExport))
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "https://go.dev/blog", first.URL)
	assert.Equal(t, "The Go Blog", first.Title)
	assert.Equal(t, "Official Go project blog", first.Description)
	assert.True(t, time.Unix(1686825000, 0).UTC().Equal(first.CreatedAt))

	second := records[1]
	assert.Equal(t, "Plain Entry", second.Title)
	assert.Empty(t, second.Description)
}

func TestParse_SkipsInvalidHrefs(t *testing.T) {
	input := `<DL>
<DT><A HREF="javascript:alert(1)">Nope</A>
<DT><A>No href at all</A>
<DT><A HREF="not a url">Broken</A>
<DT><A HREF="/relative/only">Relative</A>
<DT><A HREF="https://example.com/ok">Fine</A>
</DL>`

	records := Parse([]byte(input))
	require.Len(t, records, 1)
	assert.Equal(t, "https://example.com/ok", records[0].URL)
}

func TestParse_TitleDefaultsToURL(t *testing.T) {
	records := Parse([]byte(`<DT><A HREF="https://example.com/untitled"></A>`))
	require.Len(t, records, 1)
	assert.Equal(t, "https://example.com/untitled", records[0].Title)
}

func TestParse_LegacyShortKeyFromQuery(t *testing.T) {
	input := `<DT><A HREF="https://links.example.org/?WDWyig">A note</A>
<DT><A HREF="https://example.com/article?id=12345">Not a key</A>`

	records := Parse([]byte(input))
	require.Len(t, records, 2)
	assert.Equal(t, "WDWyig", records[0].ShaarliShortURL)
	assert.Empty(t, records[1].ShaarliShortURL)
}

func TestParse_RoundTripAttributes(t *testing.T) {
	input := `<DT><A HREF="https://example.com/a" ADD_DATE="1686825000" LAST_MODIFIED="1686830000" SHORTURL="Ab3dE9xY" SHAARLI_SHORTURL="WDWyig">Saved</A>`

	records := Parse([]byte(input))
	require.Len(t, records, 1)
	assert.Equal(t, "Ab3dE9xY", records[0].ShortURL)
	assert.Equal(t, "WDWyig", records[0].ShaarliShortURL)
	assert.True(t, time.Unix(1686830000, 0).UTC().Equal(records[0].UpdatedAt))
}

func TestParse_EntityDecoding(t *testing.T) {
	input := `<DT><A HREF="https://example.com/?a=1&amp;b=2">Ampersands &amp; Entities</A>
<DD>Uses &lt;tags&gt; in text`

	records := Parse([]byte(input))
	require.Len(t, records, 1)
	assert.Equal(t, "https://example.com/?a=1&b=2", records[0].URL)
	assert.Equal(t, "Ampersands & Entities", records[0].Title)
	assert.Equal(t, "Uses <tags> in text", records[0].Description)
}

func TestParse_EmptyAndGarbageInput(t *testing.T) {
	assert.Empty(t, Parse(nil))
	assert.Empty(t, Parse([]byte("not html at all")))
	assert.Empty(t, Parse([]byte("<html><body><p>no anchors</p></body></html>")))
}
