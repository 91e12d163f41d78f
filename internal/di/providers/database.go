package providers

import (
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/gongyuapp/gongyu-server/internal/config"
	"github.com/gongyuapp/gongyu-server/internal/logger"
	"github.com/gongyuapp/gongyu-server/internal/store"
	"github.com/gongyuapp/gongyu-server/internal/store/postgres"
	"github.com/gongyuapp/gongyu-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the bookmark store for the configured backend.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		s   store.Store
		err error
	)
	switch cfg.Database.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.Database.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		s, err = sqlite.Open(cfg.SQLitePath(), log.Logger)
	case config.BackendPostgres:
		s, err = postgres.Open(cfg.Database.PostgresDSN, log.Logger)
	default:
		return nil, fmt.Errorf("unknown database backend: %q", cfg.Database.Backend)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "backend", cfg.Database.Backend)

	return &StoreHandle{Store: s}, nil
}
