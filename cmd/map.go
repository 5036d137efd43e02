package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/owllearn/internal/app"
	"github.com/abhisek/owllearn/internal/curriculum"
	"github.com/abhisek/owllearn/internal/ui/components"
	"github.com/abhisek/owllearn/internal/ui/theme"
	"github.com/spf13/cobra"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Show the skill tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			a.Visit()
			out := cmd.OutOrStdout()
			var band curriculum.Band
			for _, v := range a.Map() {
				if v.Band != band {
					band = v.Band
					fmt.Fprintln(out, theme.Title.Render(band.DisplayName()))
				}
				fmt.Fprintln(out, components.StageRow(v))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, components.Legend())
			return nil
		})
	},
}
