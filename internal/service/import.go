package service

import (
	"context"
	"log/slog"

	"github.com/gongyuapp/gongyu-server/internal/importer"
	"github.com/gongyuapp/gongyu-server/internal/parser/gongyu"
	"github.com/gongyuapp/gongyu-server/internal/parser/netscape"
	"github.com/gongyuapp/gongyu-server/internal/parser/shaarli"
	"github.com/gongyuapp/gongyu-server/internal/parser/shaarliapi"
)

// ImportService runs the parse-then-import pipeline for every
// supported source format. Structural parser failures are folded into
// the Result so every import responds with the same shape; only store
// failures surface as errors.
type ImportService struct {
	importer *importer.Importer
	remote   *shaarliapi.Client
	logger   *slog.Logger
}

// NewImportService creates a new import service.
func NewImportService(im *importer.Importer, remote *shaarliapi.Client, logger *slog.Logger) *ImportService {
	return &ImportService{
		importer: im,
		remote:   remote,
		logger:   logger,
	}
}

// ImportNetscape imports a Netscape bookmark file.
func (s *ImportService) ImportNetscape(ctx context.Context, data []byte) (*importer.Result, error) {
	return s.importer.Import(ctx, netscape.Parse(data))
}

// ImportDatastore imports a legacy Shaarli datastore.php file.
func (s *ImportService) ImportDatastore(ctx context.Context, data []byte) (*importer.Result, error) {
	records, err := shaarli.Parse(data)
	if err != nil {
		return s.failedResult(err), nil
	}
	return s.importer.Import(ctx, records)
}

// ImportJSON imports a Gongyu JSON export.
func (s *ImportService) ImportJSON(ctx context.Context, data []byte) (*importer.Result, error) {
	records, err := gongyu.Parse(data)
	if err != nil {
		return s.failedResult(err), nil
	}
	return s.importer.Import(ctx, records)
}

// ImportRemote imports every link from a live Shaarli instance.
func (s *ImportService) ImportRemote(ctx context.Context, baseURL, secret string) (*importer.Result, error) {
	records, err := s.remote.FetchLinks(ctx, baseURL, secret)
	if err != nil {
		return s.failedResult(err), nil
	}
	return s.importer.Import(ctx, records)
}

// failedResult wraps a structural failure in the uniform import result.
func (s *ImportService) failedResult(err error) *importer.Result {
	s.logger.Warn("import failed before reaching the store", "error", err)
	return &importer.Result{Errors: []string{err.Error()}}
}
