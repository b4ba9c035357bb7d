// Package cli implements the seqedit command line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/astrokit/seqedit/internal/config"
	"github.com/astrokit/seqedit/internal/db"
)

var (
	cfg    *config.Config
	logger zerolog.Logger

	flagLogLevel string
	flagDatabase string
)

var rootCmd = &cobra.Command{
	Use:   "seqedit",
	Short: "Edit and convert imaging sequences",
	Long:  "seqedit builds, validates and converts astronomy imaging sequences in the N.I.N.A. advanced sequencer JSON format.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if flagDatabase != "" {
			cfg.DatabasePath = flagDatabase
		}
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		logger = newLogger(cfg.LogLevel)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "db", "", "path to the template database")
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}

// openDatabase opens the template database, creating the data directory on
// first use.
func openDatabase(ctx context.Context) (*db.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return db.Open(ctx, cfg.DatabasePath, logger)
}
