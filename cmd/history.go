package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/owllearn/internal/app"
	"github.com/abhisek/owllearn/internal/ui/theme"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent lessons, purchases and quest claims",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			h, err := a.History(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			const layout = time.DateTime

			fmt.Fprintln(out, theme.Title.Render("Lessons"))
			for _, e := range h.Lessons {
				fmt.Fprintf(out, "  %s  %-4s %-13s %3d XP  %d mistakes\n",
					e.Timestamp.Local().Format(layout), e.LessonID, e.Outcome, e.XPEarned, e.Mistakes)
			}
			fmt.Fprintln(out, theme.Title.Render("Purchases"))
			for _, e := range h.Purchases {
				fmt.Fprintf(out, "  %s  %-20s %4d gems\n", e.Timestamp.Local().Format(layout), e.ItemID, e.Price)
			}
			fmt.Fprintln(out, theme.Title.Render("Quests"))
			for _, e := range h.Claims {
				fmt.Fprintf(out, "  %s  %-16s %-10s +%d gems\n", e.Timestamp.Local().Format(layout), e.QuestID, e.WindowKey, e.Reward)
			}
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Entries to show per section")
}
