package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/owllearn/internal/app"
	"github.com/abhisek/owllearn/internal/ui/components"
	"github.com/abhisek/owllearn/internal/ui/theme"
	"github.com/spf13/cobra"
)

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "Daily and weekly quests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return questsListCmd.RunE(cmd, args)
	},
}

var questsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show quest progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			statuses, err := a.Quests().List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, st := range statuses {
				mark := " "
				switch {
				case st.Claimed:
					mark = "✅"
				case st.Complete():
					mark = "🎁"
				}
				fmt.Fprintf(out, "%s %-16s %-7s %s  %s\n", mark, st.ID, st.Scope, st.Title,
					theme.Gems.Render(fmt.Sprintf("+%d", st.Reward)))
				fmt.Fprintf(out, "   %s\n", components.ProgressBar{
					Done: min(st.Progress, st.Target), Total: st.Target, Width: 40,
				}.View())
			}
			return nil
		})
	},
}

var questsClaimCmd = &cobra.Command{
	Use:   "claim <id>",
	Short: "Claim a completed quest's reward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			st, state, err := a.Quests().Claim(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Gems.Render(
				fmt.Sprintf("%s claimed: +%d gems (💎 %d)", st.Title, st.Reward, state.Gems)))
			return nil
		})
	},
}

func init() {
	questsCmd.AddCommand(questsListCmd)
	questsCmd.AddCommand(questsClaimCmd)
}
