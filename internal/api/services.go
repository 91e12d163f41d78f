package api

import (
	"github.com/gongyuapp/gongyu-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Bookmarks *service.BookmarkService
	Imports   *service.ImportService
	Exports   *service.ExportService
}
