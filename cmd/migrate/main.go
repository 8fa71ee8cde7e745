// Command migrate creates or updates the portal tables and exits. Use it when the
// server runs with database.auto_migrate disabled.
package main

import (
	"fmt"

	"github.com/rgrams-coder/mmles/internal/config"
	"github.com/rgrams-coder/mmles/internal/database"
	"github.com/rgrams-coder/mmles/internal/logger"
)

func main() {
	if err := run(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger.Init(cfg.Server.Env)

	db, err := database.Open(database.Options{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Debug:  !cfg.IsProduction(),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("Migration completed", "driver", cfg.Database.Driver)
	return nil
}
