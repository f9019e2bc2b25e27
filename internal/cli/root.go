// Package cli is the kariyer command line: the HTTP server plus the maintenance jobs it runs on a schedule.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"kariyer_backend/internal/app"
	"kariyer_backend/internal/config"
	"kariyer_backend/internal/logger"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "kariyer",
	Short: "Kariyer Kamulog backend",
	Long: `Kariyer Kamulog backend: accounts, bank-transfer subscriptions,
consultant chat, CV tools and public and private sector job listings.

Without a subcommand the HTTP server is started.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			return os.Setenv("CONFIG_PATH", configPath)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file (default config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

// bootstrap loads the config, sets up logging and opens the database.
func bootstrap(ctx context.Context) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	env := cfg.Server.Env
	if verbose {
		env = "development"
	}
	logger.Init(env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	db, err := app.OpenDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
