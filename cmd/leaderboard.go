package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/owllearn/internal/app"
	"github.com/abhisek/owllearn/internal/leaderboard"
	"github.com/abhisek/owllearn/internal/ui/theme"
	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank yourself against other learners",
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, _ := cmd.Flags().GetString("type")
		limit, _ := cmd.Flags().GetInt("limit")
		metric, err := leaderboard.ParseMetric(typ)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			b, err := a.Leaderboard(ctx, metric, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range b.Entries {
				line := fmt.Sprintf("%3d. %s %-14s %6d", e.Rank, e.Avatar, e.Name, e.Value(metric))
				if e.Self {
					line = theme.Title.Render(line)
				}
				fmt.Fprintln(out, line)
			}
			if b.SelfRank > len(b.Entries) {
				fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("You are #%d", b.SelfRank)))
			}
			return nil
		})
	},
}

func init() {
	leaderboardCmd.Flags().String("type", "xp", "Ranking metric: xp, streak or lessons")
	leaderboardCmd.Flags().Int("limit", leaderboard.DefaultLimit, "Number of entries to show")
}
