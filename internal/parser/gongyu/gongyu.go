// Package gongyu parses Gongyu's own JSON export format, so exported
// collections can be imported back without losing identifiers.
package gongyu

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"github.com/gongyuapp/gongyu-server/internal/domain"
)

// ErrNoBookmarks is returned when the document is valid JSON but not a
// Gongyu export.
var ErrNoBookmarks = errors.New("no bookmarks array found in JSON document")

type exportFile struct {
	Bookmarks []exportedBookmark `json:"bookmarks"`
}

type exportedBookmark struct {
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	ShortURL        string    `json:"short_url"`
	ShaarliShortURL string    `json:"shaarli_short_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Parse decodes a Gongyu JSON export into import records. Short and
// legacy identifiers are preserved for round-trips. A document that is
// not an object carrying a bookmarks array is a structural error.
func Parse(data []byte) ([]domain.ImportRecord, error) {
	var file exportFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode JSON export: %w", err)
	}
	if file.Bookmarks == nil {
		return nil, ErrNoBookmarks
	}

	records := make([]domain.ImportRecord, 0, len(file.Bookmarks))
	for _, b := range file.Bookmarks {
		records = append(records, domain.ImportRecord{
			URL:             b.URL,
			Title:           b.Title,
			Description:     b.Description,
			ThumbnailURL:    b.ThumbnailURL,
			ShortURL:        b.ShortURL,
			ShaarliShortURL: b.ShaarliShortURL,
			CreatedAt:       b.CreatedAt.UTC(),
			UpdatedAt:       b.UpdatedAt.UTC(),
		})
	}
	return records, nil
}
