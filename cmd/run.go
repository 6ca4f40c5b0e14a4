package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/profilecard/internal/app"
	"github.com/abhisek/profilecard/internal/profile"
)

// runApp resolves the variant, builds the generator, and launches the TUI.
// The first profile is generated inside the TUI so a slow provider shows a
// spinner instead of a blank terminal.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	variant, err := resolveVariant(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cmd, true)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	deps, err := buildGenerator(ctx, cmd, variant, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	logger.Info("starting", "variant", variant.Name, "version", version)
	st := profile.NewStore(deps.Generator, profile.WithLogger(logger))

	return app.Run(ctx, app.Options{
		Store:   st,
		Variant: variant,
		Logger:  logger,
		Timeout: deps.Timeout,
	})
}
