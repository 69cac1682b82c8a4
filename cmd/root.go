package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/sumclock/internal/config"
	"github.com/abhisek/sumclock/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "sumclock",
	Short: "Add two numbers while the clock runs",
	Long: "Sumclock — a terminal app with two steppers, their live sum and an elapsed-seconds counter.\n" +
		"When stdout is not a terminal it prints one line per state change instead.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SUMCLOCK_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides SUMCLOCK_CONFIG env var)")
	rootCmd.PersistentFlags().Bool("no-history", false, "Do not record sessions")

	rootCmd.Flags().Duration("duration", 0, "Stop after this long (headless mode only)")
	rootCmd.Flags().Int("a", 0, "Initial value of A (headless mode only)")
	rootCmd.Flags().Int("b", 0, "Initial value of B (headless mode only)")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig builds the config from defaults, the environment and flags,
// in increasing priority.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv(config.DefaultConfig())
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		if cfg, err = config.Load(p, cfg); err != nil {
			return cfg, err
		}
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if off, _ := cmd.Flags().GetBool("no-history"); off {
		cfg.History = false
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the history database for cfg.
func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
