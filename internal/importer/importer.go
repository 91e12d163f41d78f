// Package importer deduplicates parsed bookmark records and loads them
// into the store in one atomic batch.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gongyuapp/gongyu-server/internal/domain"
	"github.com/gongyuapp/gongyu-server/internal/id"
	"github.com/gongyuapp/gongyu-server/internal/store"
)

// Result summarizes one import call. Errors always serializes as an
// array so clients can index into it without a presence check.
type Result struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// Importer loads parsed records into a store.
type Importer struct {
	store  store.Store
	logger *slog.Logger
}

// New creates an importer backed by the given store.
func New(s store.Store, logger *slog.Logger) *Importer {
	return &Importer{store: s, logger: logger}
}

// Import processes records in input order. Records without a URL are
// recorded as errors; URLs already stored or already accepted earlier
// in the batch are skipped (first occurrence wins). Accepted records
// insert in one transaction, so a failure leaves the store untouched.
func (im *Importer) Import(ctx context.Context, records []domain.ImportRecord) (*Result, error) {
	result := &Result{}
	if len(records) == 0 {
		return result, nil
	}

	count, err := im.store.CountBookmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookmarks: %w", err)
	}

	// A fresh store cannot hold duplicates, so skip the URL scan.
	existing := map[string]bool{}
	if count > 0 {
		existing, err = im.store.ExistingURLs(ctx)
		if err != nil {
			return nil, fmt.Errorf("load existing urls: %w", err)
		}
	}

	var (
		queue    []*domain.Bookmark
		seen     = make(map[string]bool)
		usedKeys = make(map[string]bool)
		now      = time.Now().UTC()
	)

	for i, rec := range records {
		url := strings.TrimSpace(rec.URL)
		if url == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: missing URL", i+1))
			continue
		}

		if existing[url] || seen[url] {
			result.Skipped++
			continue
		}
		seen[url] = true

		shortURL, err := im.chooseShortKey(ctx, rec.ShortURL, usedKeys)
		if err != nil {
			return nil, err
		}
		usedKeys[shortURL] = true

		title := rec.Title
		if title == "" {
			title = url
		}

		createdAt := rec.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		updatedAt := rec.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = createdAt
		}

		queue = append(queue, &domain.Bookmark{
			ShortURL:        shortURL,
			URL:             url,
			Title:           title,
			Description:     rec.Description,
			ThumbnailURL:    rec.ThumbnailURL,
			ShaarliShortURL: rec.ShaarliShortURL,
			CreatedAt:       createdAt,
			UpdatedAt:       updatedAt,
		})
	}

	if len(queue) == 0 {
		return result, nil
	}

	if err := im.store.BulkCreateBookmarks(ctx, queue); err != nil {
		return nil, fmt.Errorf("bulk insert: %w", err)
	}
	result.Imported = len(queue)

	// The SQLite FTS index is rebuilt once instead of trusting
	// per-row trigger work across a huge batch. Best effort.
	if im.store.Backend() == store.BackendSQLite {
		if err := im.store.RebuildSearchIndex(ctx); err != nil {
			im.logger.Warn("search index rebuild after import failed", "error", err)
		}
	}

	im.logger.Info("import finished",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"errors", len(result.Errors))

	return result, nil
}

// chooseShortKey reuses the record's own key when it is free, so
// export/import round-trips keep stable short URLs. Otherwise it
// generates keys until one is unused.
func (im *Importer) chooseShortKey(ctx context.Context, preferred string, usedKeys map[string]bool) (string, error) {
	if preferred != "" && !usedKeys[preferred] {
		taken, err := im.store.ShortURLExists(ctx, preferred)
		if err != nil {
			return "", fmt.Errorf("check short url: %w", err)
		}
		if !taken {
			return preferred, nil
		}
	}

	for {
		key, err := id.NewShortKey()
		if err != nil {
			return "", fmt.Errorf("generate short key: %w", err)
		}
		if usedKeys[key] {
			continue
		}
		taken, err := im.store.ShortURLExists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("check short url: %w", err)
		}
		if !taken {
			return key, nil
		}
	}
}
