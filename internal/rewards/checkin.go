// Package rewards pays the daily login and streak milestone bonuses.
package rewards

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/abhisek/owllearn/internal/progress"
)

const (
	DailyLoginGems       = 2
	StreakMilestoneGems  = 25
	StreakMilestoneEvery = 7
)

// Transactor applies groups of progress actions atomically.
// *progress.Store satisfies it.
type Transactor interface {
	Transact(fn func(progress.State) []progress.Action) (before, after progress.State)
}

// CheckInResult describes what a check-in paid out.
type CheckInResult struct {
	// NewDay is false when the learner already checked in today.
	NewDay     bool
	Streak     int
	Milestone  bool
	GemsEarned int
	State      progress.State
}

// Today returns the calendar date of now in now's location.
func Today(now time.Time) civil.Date {
	return civil.DateOf(now)
}

// CheckIn records play on today. The first check-in of a day pays the daily
// login bonus, and a streak landing on a multiple of seven pays the
// milestone bonus. Repeated check-ins on the same day change nothing.
func CheckIn(t Transactor, today civil.Date) CheckInResult {
	var res CheckInResult
	_, st := t.Transact(func(s progress.State) []progress.Action {
		res = CheckInResult{}
		streak := progress.UpdateStreak{Today: today}
		if s.LastPlayDate != nil && *s.LastPlayDate == today {
			return []progress.Action{streak}
		}

		res.NewDay = true
		res.GemsEarned = DailyLoginGems
		if next := progress.Apply(s, streak); next.Streak > 0 && next.Streak%StreakMilestoneEvery == 0 {
			res.Milestone = true
			res.GemsEarned += StreakMilestoneGems
		}
		return []progress.Action{streak, progress.EarnGems{Amount: res.GemsEarned}}
	})
	res.Streak = st.Streak
	res.State = st
	return res
}
