// Package quest tracks daily and weekly goals and pays their gem rewards.
package quest

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Scope is the window a quest resets in.
type Scope string

const (
	ScopeDaily  Scope = "daily"
	ScopeWeekly Scope = "weekly"
)

// Metric is what a quest counts.
type Metric string

const (
	MetricLessons Metric = "lessons" // completed lessons in the window
	MetricXP      Metric = "xp"      // XP earned in lessons in the window
	MetricPerfect Metric = "perfect" // perfect lessons in the window
	MetricStreak  Metric = "streak"  // current day streak
	MetricStages  Metric = "stages"  // stages finished in the window
)

// Quest is a goal with a gem reward.
type Quest struct {
	ID          string
	Title       string
	Description string
	Scope       Scope
	Metric      Metric
	Target      int
	Reward      int
}

var quests = []Quest{
	{
		ID: "complete-lesson", Title: "Complete a Lesson", Description: "Finish any lesson today",
		Scope: ScopeDaily, Metric: MetricLessons, Target: 1, Reward: 20,
	},
	{
		ID: "earn-xp", Title: "Earn 50 XP", Description: "Get 50 XP from lessons",
		Scope: ScopeDaily, Metric: MetricXP, Target: 50, Reward: 15,
	},
	{
		ID: "perfect-lesson", Title: "Perfect Lesson", Description: "Complete a lesson with no mistakes",
		Scope: ScopeDaily, Metric: MetricPerfect, Target: 1, Reward: 30,
	},
	{
		ID: "week-streak", Title: "Week Warrior", Description: "Maintain a 7-day streak",
		Scope: ScopeWeekly, Metric: MetricStreak, Target: 7, Reward: 100,
	},
	{
		ID: "complete-stage", Title: "Stage Master", Description: "Complete an entire stage",
		Scope: ScopeWeekly, Metric: MetricStages, Target: 1, Reward: 150,
	},
}

// All returns every quest, daily ones first.
func All() []Quest {
	out := make([]Quest, len(quests))
	copy(out, quests)
	return out
}

// Lookup finds a quest by ID.
func Lookup(id string) (Quest, bool) {
	for _, q := range quests {
		if q.ID == id {
			return q, true
		}
	}
	return Quest{}, false
}

// Window is the period a quest's progress is counted over.
type Window struct {
	Start time.Time
	End   time.Time // exclusive

	// Key identifies the window in the claim log: "2026-10-14" for a day,
	// "2026-W42" for an ISO week.
	Key string
}

// WindowOf returns the window containing now, in now's location. Weeks
// start on Monday.
func WindowOf(scope Scope, now time.Time) Window {
	today := civil.DateOf(now)
	switch scope {
	case ScopeWeekly:
		offset := (int(now.Weekday()) + 6) % 7 // days since Monday
		monday := today.AddDays(-offset)
		start := monday.In(now.Location())
		year, week := start.ISOWeek()
		return Window{
			Start: start,
			End:   monday.AddDays(7).In(now.Location()),
			Key:   fmt.Sprintf("%d-W%02d", year, week),
		}
	default:
		return Window{
			Start: today.In(now.Location()),
			End:   today.AddDays(1).In(now.Location()),
			Key:   today.String(),
		}
	}
}
