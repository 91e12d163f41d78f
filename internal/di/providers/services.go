package providers

import (
	"github.com/samber/do/v2"

	"github.com/gongyuapp/gongyu-server/internal/config"
	"github.com/gongyuapp/gongyu-server/internal/importer"
	"github.com/gongyuapp/gongyu-server/internal/logger"
	"github.com/gongyuapp/gongyu-server/internal/parser/shaarliapi"
	"github.com/gongyuapp/gongyu-server/internal/service"
	"github.com/gongyuapp/gongyu-server/internal/validation"
)

// ProvideBookmarkService provides the bookmark CRUD service.
func ProvideBookmarkService(i do.Injector) (*service.BookmarkService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookmarkService(storeHandle.Store, validation.New(), log.Logger), nil
}

// ProvideImportService provides the import pipeline service.
func ProvideImportService(i do.Injector) (*service.ImportService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	im := importer.New(storeHandle.Store, log.Logger)
	remote := shaarliapi.NewClient(cfg.Import.RemoteTimeout)

	return service.NewImportService(im, remote, log.Logger), nil
}

// ProvideExportService provides the export service.
func ProvideExportService(i do.Injector) (*service.ExportService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewExportService(storeHandle.Store, log.Logger), nil
}
