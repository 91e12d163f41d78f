// Package domain contains the core domain models for Gongyu.
package domain

import "time"

// Limits enforced when creating or updating bookmarks.
const (
	MaxURLLength   = 2048
	MaxTitleLength = 500
)

// Bookmark represents a saved link.
type Bookmark struct {
	ID              int64     `json:"id"`
	ShortURL        string    `json:"short_url"`
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	ShaarliShortURL string    `json:"shaarli_short_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ImportRecord is a bookmark candidate produced by a parser before it
// has been deduplicated or assigned a short key. Zero timestamps mean
// the source carried none.
type ImportRecord struct {
	URL             string
	Title           string
	Description     string
	ThumbnailURL    string
	ShortURL        string
	ShaarliShortURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayTitle returns the bookmark title, falling back to the URL when
// no title was ever set.
func (b *Bookmark) DisplayTitle() string {
	if b.Title != "" {
		return b.Title
	}
	return b.URL
}

// Edited reports whether the bookmark has been modified after creation.
func (b *Bookmark) Edited() bool {
	return b.UpdatedAt.After(b.CreatedAt)
}
