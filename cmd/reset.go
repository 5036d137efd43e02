package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/owllearn/internal/app"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("this erases all progress; rerun with --yes to confirm")
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Snapshot(ctx); err != nil {
				return fmt.Errorf("snapshot before reset: %w", err)
			}
			if _, err := a.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
