// Command emsctl administers an EMS deployment: schema migrations, demo data,
// and inspection of the API route table.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/ems-backend/internal/config"
	"github.com/JaimeStill/ems-backend/pkg/database"
	"github.com/JaimeStill/ems-backend/pkg/logging"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "emsctl",
		Short: "Administer the EMS backend",
		Long: `emsctl manages an EMS backend deployment.

Configuration is read from config.toml in the working directory, with the
overlay selected by SERVICE_ENV and environment variable overrides applied.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		migrateCmd(),
		seedCmd(),
		routesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// connect loads configuration and returns a verified connection pool.
func connect(ctx context.Context) (*sql.DB, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(&cfg.Logging)

	sys, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	db := sys.Connection()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnTimeoutDuration())
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	return db, logger, nil
}
