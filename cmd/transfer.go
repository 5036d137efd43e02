package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/owllearn/internal/app"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print progress as a JSON record",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			data, err := a.Export()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore progress from a JSON record",
	Long:  "Restore progress from a JSON record, such as one exported earlier or the owllearn-game-state value saved by the web client. Fields the record omits are left unchanged.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			s, err := a.Import(data)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported: stage %d, %d lessons, %d XP, %d gems\n",
				s.CurrentStage, s.CompletedLessons.Len(), s.TotalXP, s.Gems)
			return nil
		})
	},
}
