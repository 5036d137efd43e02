package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/owllearn/internal/unlock"
	"github.com/abhisek/owllearn/internal/ui/theme"
)

// StageRow renders one stage of the skill tree on a single line.
func StageRow(v unlock.StageView) string {
	var b strings.Builder
	title := fmt.Sprintf("%s Stage %2d %-8s", v.Theme.Icon, v.Stage, v.Theme.Name)
	if v.Done() {
		b.WriteString(theme.Correct.Render(title))
	} else {
		b.WriteString(theme.Body.Render(title))
	}
	for _, n := range v.Nodes {
		b.WriteString(" ")
		b.WriteString(theme.Node(n.Status).Render(fmt.Sprintf("%s %s", n.Status.Icon(), n.ID)))
	}
	return b.String()
}

// Legend explains the node icons.
func Legend() string {
	var parts []string
	for _, st := range []unlock.Status{unlock.Completed, unlock.Current, unlock.Available, unlock.Locked} {
		parts = append(parts, theme.Node(st).Render(st.Icon()+" "+st.Label()))
	}
	return strings.Join(parts, "   ")
}
