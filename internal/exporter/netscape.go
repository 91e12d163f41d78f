// Package exporter renders bookmark collections as Netscape HTML or
// JSON documents.
package exporter

import (
	"fmt"
	"html"
	"strings"

	"github.com/gongyuapp/gongyu-server/internal/domain"
)

const netscapeHeader = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
`

// Netscape renders bookmarks in the order given as a Netscape bookmark
// file. Every interpolated value is entity-escaped.
func Netscape(bookmarks []*domain.Bookmark) []byte {
	var sb strings.Builder
	sb.WriteString(netscapeHeader)

	for _, b := range bookmarks {
		sb.WriteString(fmt.Sprintf(`<DT><A HREF="%s" ADD_DATE="%d" SHORTURL="%s"`,
			html.EscapeString(b.URL), b.CreatedAt.Unix(), html.EscapeString(b.ShortURL)))

		if b.ShaarliShortURL != "" {
			sb.WriteString(fmt.Sprintf(` SHAARLI_SHORTURL="%s"`, html.EscapeString(b.ShaarliShortURL)))
		}
		if b.Edited() {
			sb.WriteString(fmt.Sprintf(` LAST_MODIFIED="%d"`, b.UpdatedAt.Unix()))
		}

		sb.WriteString(">" + html.EscapeString(b.DisplayTitle()) + "</A>\n")

		if b.Description != "" {
			sb.WriteString("<DD>" + html.EscapeString(b.Description) + "\n")
		}
	}

	sb.WriteString("</DL><p>\n")
	return []byte(sb.String())
}
