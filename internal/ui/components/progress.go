package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/owllearn/internal/ui/theme"
)

// ProgressBar displays done out of total as a horizontal bar.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// Percent returns the completed share in [0, 100].
func (p ProgressBar) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return min(max(p.Done*100/p.Total, 0), 100)
}

// View renders the bar followed by "done/total".
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label))
		b.WriteString("  ")
	}

	width := max(p.Width-lipgloss.Width(b.String())-10, 4)
	filled := width * p.Percent() / 100
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Owl).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", width-filled)))
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %d/%d", p.Done, p.Total)))
	return b.String()
}
