package cli

import (
	"context"
	"fmt"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/database"
	"taskman/internal/logging"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App
	ctx context.Context
}

// NewCLI initializes the CLI: config, logger, database, services
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	db, err := database.InitDB(ctx, cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &CLI{
		App: app.New(db, logger),
		ctx: ctx,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return c.App.Close()
}
