package exporter

import (
	"encoding/json/v2"
	"fmt"
	"time"

	"github.com/gongyuapp/gongyu-server/internal/domain"
)

// formatVersion identifies the JSON export layout for future readers.
const formatVersion = "1"

type jsonExport struct {
	ExportedAt time.Time          `json:"exported_at"`
	Version    string             `json:"version"`
	Count      int                `json:"count"`
	Bookmarks  []*domain.Bookmark `json:"bookmarks"`
}

// JSON renders bookmarks as a Gongyu JSON export. URLs and non-ASCII
// text pass through unescaped.
func JSON(bookmarks []*domain.Bookmark) ([]byte, error) {
	doc := jsonExport{
		ExportedAt: time.Now().UTC(),
		Version:    formatVersion,
		Count:      len(bookmarks),
		Bookmarks:  bookmarks,
	}
	if doc.Bookmarks == nil {
		doc.Bookmarks = []*domain.Bookmark{}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}
