package cmd

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/profilecard/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "profilecard",
	Short: "View, edit and randomize a synthetic user profile",
	Long:  "profilecard is a terminal profile card: browse a generated profile, edit it in place, or roll a new one.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to subcommands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides PROFILECARD_DB env var)")
	pf.String("config", "", "Variant config file (overrides PROFILECARD_CONFIG env var)")
	pf.String("variant", "", "Built-in variant: classic or card (overrides PROFILECARD_VARIANT env var)")
	pf.Int64("seed", 0, "Seed for the random generator (0 picks one from the clock)")
	pf.Bool("ai", false, "Generate profiles with the configured LLM provider, falling back to random data")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides PROFILECARD_LOG_LEVEL)")

	rootCmd.Flags().String("log-file", "", "Log file for the TUI (overrides PROFILECARD_LOG_FILE env var)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PROFILECARD_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
