package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/gongyuapp/gongyu-server/internal/api"
	"github.com/gongyuapp/gongyu-server/internal/config"
	"github.com/gongyuapp/gongyu-server/internal/logger"
	"github.com/gongyuapp/gongyu-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	shutdownTimeout time.Duration
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Bookmarks: do.MustInvoke[*service.BookmarkService](i),
		Imports:   do.MustInvoke[*service.ImportService](i),
		Exports:   do.MustInvoke[*service.ExportService](i),
	}

	handler := api.NewServer(services, storeHandle.Backend(), api.Options{
		MaxUploadSize: cfg.Import.MaxUploadSize,
	}, log.Logger)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{
		Server:          srv,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}, nil
}
