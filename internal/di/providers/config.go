// Package providers contains dependency injection providers for the Gongyu server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/gongyuapp/gongyu-server/internal/config"
	"github.com/gongyuapp/gongyu-server/internal/logger"
)

// ProvideConfig provides the validated application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.Load()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Format:      cfg.Logging.Format,
		Environment: cfg.Environment,
		Level:       logger.ParseLevel(cfg.Logging.Level),
		AddSource:   cfg.Environment == "development",
	})

	log.Info("Starting Gongyu Server",
		"environment", cfg.Environment,
		"log_level", cfg.Logging.Level,
		"db_backend", cfg.Database.Backend,
	)

	return log, nil
}
