package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/gongyuapp/gongyu-server/internal/errors"
	"github.com/gongyuapp/gongyu-server/internal/exporter"
	"github.com/gongyuapp/gongyu-server/internal/store"
)

// Export formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
)

// ExportFile is a rendered export ready to be served as a download.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the full bookmark collection for download.
type ExportService struct {
	store  store.Store
	logger *slog.Logger
}

// NewExportService creates a new export service.
func NewExportService(s store.Store, logger *slog.Logger) *ExportService {
	return &ExportService{store: s, logger: logger}
}

// Export renders every bookmark, newest first, in the requested
// format. An empty format means HTML.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportFile, error) {
	if format == "" {
		format = FormatHTML
	}
	if format != FormatHTML && format != FormatJSON {
		return nil, errors.Validationf("unsupported export format: %q", format)
	}

	bookmarks, err := s.store.ListBookmarks(ctx, store.ListOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "list bookmarks")
	}

	stamp := time.Now().UTC().Format("20060102_150405")
	file := &ExportFile{}

	switch format {
	case FormatHTML:
		file.Content = exporter.Netscape(bookmarks)
		file.ContentType = "text/html; charset=utf-8"
		file.Filename = "bookmarks_" + stamp + ".html"
	case FormatJSON:
		file.Content, err = exporter.JSON(bookmarks)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "render export")
		}
		file.ContentType = "application/json"
		file.Filename = "bookmarks_" + stamp + ".json"
	}

	s.logger.Info("export rendered", "format", format, "bookmarks", len(bookmarks))
	return file, nil
}
