// Package main runs the taskdesk API server. With -migrate it applies a
// database migration command instead and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/taskdesk-api/internal/config"
	"github.com/phrazzld/taskdesk-api/internal/platform/logger"
	"github.com/phrazzld/taskdesk-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	configPath := flag.String("config", "", "path to a YAML config file (default: ./config.yaml if present)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *migrateCmd); err != nil {
		fmt.Fprintf(os.Stderr, "taskdesk-api: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run loads configuration, connects to the database and either applies a
// migration command or serves HTTP until ctx is canceled.
func run(ctx context.Context, configPath, migrateCmd string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close database", "error", cerr)
		}
	}()

	if migrateCmd != "" {
		return postgres.Migrate(ctx, db, migrateCmd, log)
	}

	app, err := newApplication(cfg, log, postgresStores(db, cfg.Auth, log))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
