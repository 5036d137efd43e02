package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/owllearn/internal/app"
	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/ui/components"
	"github.com/abhisek/owllearn/internal/ui/theme"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show hearts, streak, gems and level",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func runStatus(cmd *cobra.Command) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		res := a.Visit()
		out := cmd.OutOrStdout()
		if res.NewDay {
			msg := fmt.Sprintf("Daily check-in: +%d gems", res.GemsEarned)
			if res.Milestone {
				msg += fmt.Sprintf(" (%d day streak bonus!)", res.Streak)
			}
			fmt.Fprintln(out, theme.Gems.Render(msg))
		}
		fmt.Fprintln(out, renderStatus(a))
		return nil
	})
}

func renderStatus(a *app.App) string {
	s := a.State()
	p := a.Profile()
	id := s.Frontier()

	var b strings.Builder
	b.WriteString(theme.Title.Render("owllearn") + "\n\n")
	fmt.Fprintf(&b, "%s  %s  %s  %s\n\n",
		theme.Hearts.Render(fmt.Sprintf("❤ %d/%d", s.Hearts, progress.MaxHearts)),
		theme.Streak.Render(fmt.Sprintf("🔥 %d", s.Streak)),
		theme.Gems.Render(fmt.Sprintf("💎 %d", s.Gems)),
		theme.XP.Render(fmt.Sprintf("Lv %d · %d XP", p.Level, s.TotalXP)),
	)
	fmt.Fprintf(&b, "%s\n", components.ProgressBar{
		Label: fmt.Sprintf("Daily goal %3d%%", p.DailyPercent),
		Done:  p.DailyPercent, Total: 100, Width: 48,
	}.View())
	fmt.Fprintf(&b, "%s\n", components.ProgressBar{
		Label: fmt.Sprintf("Stage %-2d       ", s.CurrentStage),
		Done:  p.StageDone, Total: p.StageTotal, Width: 48,
	}.View())
	fmt.Fprintf(&b, "%s\n\n", components.ProgressBar{
		Label: fmt.Sprintf("%-15s", p.Band.DisplayName()),
		Done:  p.BandDone, Total: p.BandTotal, Width: 48,
	}.View())
	fmt.Fprintf(&b, "Next lesson: %s  %s\n", id, theme.Hint.Render(fmt.Sprintf("(%d XP to level %d)", p.XPToNextLevel, p.Level+1)))

	if unlocked := p.Unlocked(); len(unlocked) > 0 {
		var names []string
		for _, ach := range unlocked {
			names = append(names, ach.Icon+" "+ach.Name)
		}
		fmt.Fprintf(&b, "Achievements: %s\n", strings.Join(names, ", "))
	}
	return theme.Card.Render(strings.TrimRight(b.String(), "\n"))
}
