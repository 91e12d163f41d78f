// Package parser holds helpers shared by the bookmark file parsers.
package parser

import (
	"strings"
	"time"
)

// timeLayouts covers the timestamp formats seen across bookmark
// sources: our own exports, Shaarli's API, PHP DateTime dumps, and
// Shaarli's legacy linkdate keys.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"20060102_150405",
}

// ParseTime parses a timestamp string in any known layout. ok is false
// when the value is empty or matches no layout.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
