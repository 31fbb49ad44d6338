package main

import (
	"fmt"

	"github.com/ikkim/certificate-validator/config"
	"github.com/ikkim/certificate-validator/internal/db"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	migrate bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Manage the certificate database",
	Long: `seed loads data into the certificate database configured by the
server's environment (DB_DRIVER, DB_HOST, ...).

The default sqlite database lives in memory, so these commands are meant
for a postgres deployment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.Initialize(logger.Config{Level: level, Format: "console", EnableColor: true})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&migrate, "migrate", true, "Run migrations before touching data")

	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

// openDatabase connects using the server configuration.
func openDatabase() (func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := db.Initialize(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}
	if migrate {
		if err := db.Migrate(); err != nil {
			closeDB()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	return closeDB, nil
}
