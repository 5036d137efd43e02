package profile

import (
	"testing"

	"github.com/abhisek/owllearn/internal/curriculum"
	"github.com/abhisek/owllearn/internal/progress"
)

func TestDailyPercent(t *testing.T) {
	tests := []struct {
		xp, goal, want int
	}{
		{0, 10, 0},
		{50, 10, 50},
		{100, 10, 100},
		{250, 10, 100},
		{15, 0, 15},
		{30, 2, 100},
		{10, 2, 50},
	}
	for _, tt := range tests {
		if got := DailyPercent(tt.xp, tt.goal); got != tt.want {
			t.Errorf("DailyPercent(%d, %d) = %d, want %d", tt.xp, tt.goal, got, tt.want)
		}
	}
}

func TestBuild(t *testing.T) {
	s := progress.Defaults()
	s.XP = 40
	s.TotalXP = 240
	s.CurrentStage = 2
	s.CurrentSubStage = 3
	s.CompletedLessons = progress.NewLessonSet(
		progress.LessonID{Stage: 1, SubStage: 1},
		progress.LessonID{Stage: 2, SubStage: 1},
		progress.LessonID{Stage: 2, SubStage: 2},
	)

	p := Build(s, curriculum.Default(), 0)

	if p.Level != 3 || p.XPToNextLevel != 60 {
		t.Errorf("level = %d, next = %d", p.Level, p.XPToNextLevel)
	}
	if p.DailyGoal != DefaultDailyGoal || p.DailyPercent != 40 {
		t.Errorf("daily = %d/%d", p.DailyPercent, p.DailyGoal)
	}
	if p.StageDone != 2 || p.StageTotal != 5 {
		t.Errorf("stage = %d/%d", p.StageDone, p.StageTotal)
	}
	if p.Band != curriculum.BandBeginner || p.BandDone != 1 || p.BandTotal != 4 {
		t.Errorf("band = %s %d/%d", p.Band, p.BandDone, p.BandTotal)
	}
	if len(p.Unlocked()) != 0 {
		t.Errorf("unlocked = %v", p.Unlocked())
	}
}

func TestAchievements(t *testing.T) {
	s := progress.Defaults()
	s.Streak = 7
	s.TotalXP = 500
	var ids []progress.LessonID
	for sub := 1; sub <= 5; sub++ {
		ids = append(ids, progress.LessonID{Stage: 1, SubStage: sub}, progress.LessonID{Stage: 2, SubStage: sub})
	}
	s.CompletedLessons = progress.NewLessonSet(ids...)

	got := Build(s, curriculum.Default(), 0).Unlocked()
	if len(got) != 3 {
		t.Fatalf("unlocked %d achievements, want 3", len(got))
	}
	for i, id := range []string{"week-warrior", "lesson-master", "xp-champion"} {
		if got[i].ID != id {
			t.Errorf("achievement %d = %s, want %s", i, got[i].ID, id)
		}
	}

	s.Streak = 6
	if n := len(Build(s, curriculum.Default(), 0).Unlocked()); n != 2 {
		t.Errorf("streak 6 unlocked %d, want 2", n)
	}
}
