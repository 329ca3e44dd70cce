package main

import (
	"fmt"
	"os"
	"strconv"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the quiz database schema",
		SilenceUsage:  true,
	}
	root.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newVersionCommand(),
	)
	return root
}

// withMigrator loads the database settings, opens a migrator and hands it to fn.
func withMigrator(fn func(m database.Migrator, cfg *config.Config, log *zap.Logger) error) error {
	cfg, err := config.LoadDBConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return err
	}
	log := logger.Get()
	defer logger.Sync()

	m, err := database.NewMigrator(cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			log.Warn("Failed to close migrator", zap.Error(closeErr))
		}
	}()
	return fn(m, cfg, log)
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m database.Migrator, cfg *config.Config, log *zap.Logger) error {
				if err := m.Up(); err != nil {
					return err
				}
				return logVersion(m, cfg, log)
			})
		},
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations, one step by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			return withMigrator(func(m database.Migrator, cfg *config.Config, log *zap.Logger) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				return logVersion(m, cfg, log)
			})
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m database.Migrator, cfg *config.Config, log *zap.Logger) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s schema version %d (dirty=%t)\n", cfg.DB.Driver, version, dirty)
				return nil
			})
		},
	}
}

func logVersion(m database.Migrator, cfg *config.Config, log *zap.Logger) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	log.Info("Schema version",
		zap.String("driver", cfg.DB.Driver),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}
