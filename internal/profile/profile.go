// Package profile derives the statistics shown on the learner's profile.
package profile

import (
	"github.com/abhisek/owllearn/internal/curriculum"
	"github.com/abhisek/owllearn/internal/progress"
)

// DefaultDailyGoal is the daily goal in lessons' worth of XP.
const DefaultDailyGoal = 10

// Achievement is an unlockable badge.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Unlocked    bool
}

var achievements = []struct {
	Achievement
	unlocked func(progress.State) bool
}{
	{
		Achievement{ID: "week-warrior", Name: "Week Warrior", Description: "Keep a 7 day streak", Icon: "🔥"},
		func(s progress.State) bool { return s.Streak >= 7 },
	},
	{
		Achievement{ID: "lesson-master", Name: "Lesson Master", Description: "Complete 10 lessons", Icon: "📚"},
		func(s progress.State) bool { return s.CompletedLessons.Len() >= 10 },
	},
	{
		Achievement{ID: "xp-champion", Name: "XP Champion", Description: "Earn 500 XP", Icon: "🏆"},
		func(s progress.State) bool { return s.TotalXP >= 500 },
	},
}

// Profile is a snapshot of derived statistics.
type Profile struct {
	Level         int
	XPToNextLevel int
	DailyGoal     int
	DailyPercent  int

	// StageDone counts completed lessons of the current stage.
	StageDone  int
	StageTotal int

	Band      curriculum.Band
	BandDone  int
	BandTotal int

	Achievements []Achievement
}

// Build derives the profile of s. dailyGoal <= 0 uses DefaultDailyGoal.
func Build(s progress.State, shape curriculum.Shape, dailyGoal int) Profile {
	if dailyGoal <= 0 {
		dailyGoal = DefaultDailyGoal
	}
	p := Profile{
		Level:         progress.Level(s.TotalXP),
		XPToNextLevel: progress.XPToNextLevel(s.TotalXP),
		DailyGoal:     dailyGoal,
		DailyPercent:  DailyPercent(s.XP, dailyGoal),
		StageTotal:    shape.SubStagesPerStage,
		Band:          curriculum.BandOf(s.CurrentStage),
	}
	for sub := 1; sub <= shape.SubStagesPerStage; sub++ {
		if s.CompletedLessons.Has(progress.LessonID{Stage: s.CurrentStage, SubStage: sub}) {
			p.StageDone++
		}
	}
	p.BandDone, p.BandTotal = curriculum.BandProgress(p.Band, s.CurrentStage)
	for _, a := range achievements {
		got := a.Achievement
		got.Unlocked = a.unlocked(s)
		p.Achievements = append(p.Achievements, got)
	}
	return p
}

// DailyPercent returns progress toward the daily goal, capped at 100.
func DailyPercent(xp, dailyGoal int) int {
	if dailyGoal <= 0 {
		dailyGoal = DefaultDailyGoal
	}
	return min(xp*100/(dailyGoal*10), 100)
}

// Unlocked returns only the unlocked achievements.
func (p Profile) Unlocked() []Achievement {
	var out []Achievement
	for _, a := range p.Achievements {
		if a.Unlocked {
			out = append(out, a)
		}
	}
	return out
}
