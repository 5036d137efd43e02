package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/owllearn/internal/curriculum"
	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/unlock"
)

func TestProgressBarPercent(t *testing.T) {
	tests := []struct {
		done, total, want int
	}{
		{0, 5, 0},
		{2, 5, 40},
		{5, 5, 100},
		{7, 5, 100},
		{1, 0, 0},
	}
	for _, tt := range tests {
		p := ProgressBar{Done: tt.done, Total: tt.total}
		if got := p.Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %d, want %d", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestProgressBarView(t *testing.T) {
	out := ProgressBar{Label: "Stage", Done: 2, Total: 5, Width: 40}.View()
	if !strings.Contains(out, "2/5") {
		t.Errorf("View() = %q", out)
	}
	if w := lipgloss.Width(out); w > 40 {
		t.Errorf("width = %d, want <= 40", w)
	}
}

func TestStageRow(t *testing.T) {
	views := unlock.Map(progress.Defaults(), curriculum.Shape{Stages: 1, SubStagesPerStage: 5})
	row := StageRow(views[0])
	for _, id := range []string{"1-1", "1-5"} {
		if !strings.Contains(row, id) {
			t.Errorf("row missing %s: %q", id, row)
		}
	}
	if !strings.Contains(Legend(), unlock.Locked.Label()) {
		t.Error("legend missing locked label")
	}
}
