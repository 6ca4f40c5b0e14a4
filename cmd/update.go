package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/profilecard/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profilecard to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		checkOnly, _ := cmd.Flags().GetBool("check")
		out := cmd.OutOrStdout()

		logger, closer, err := newLogger(cmd, false)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		defer closer.Close()

		checker := selfupdate.NewChecker(
			selfupdate.WithTimeout(2*time.Minute),
			selfupdate.WithLogger(logger),
		)

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if checkOnly {
			res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
			if err != nil {
				return err
			}
			if res.UpdateAvailable {
				fmt.Fprintf(out, "Update available: %s -> %s\n%s\n", version, res.LatestVersion, res.ReleaseURL)
			} else {
				fmt.Fprintf(out, "Up to date (%s, latest %s).\n", version, res.LatestVersion)
			}
			return nil
		}

		err = checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
		}, func(p selfupdate.UpdateProgress) {
			fmt.Fprintln(out, p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Fprintln(out, "Already running the latest version.")
			return nil
		case errors.Is(err, fs.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo profilecard update", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
}
