// Package leaderboard ranks the learner against a roster of peers.
package leaderboard

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/store"
)

// DefaultLimit is the number of entries returned when no limit is given.
const DefaultLimit = 20

// SelfName marks the learner's own entry.
const SelfName = "You"

// Metric is the ranking key.
type Metric string

const (
	MetricXP      Metric = "xp"
	MetricStreak  Metric = "streak"
	MetricLessons Metric = "lessons"
)

var ErrUnknownMetric = errors.New("unknown leaderboard metric")

// ParseMetric parses a metric name. The empty string means xp.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case "", MetricXP:
		return MetricXP, nil
	case MetricStreak:
		return MetricStreak, nil
	case MetricLessons:
		return MetricLessons, nil
	default:
		return "", fmt.Errorf("%w: %q (want xp, streak or lessons)", ErrUnknownMetric, s)
	}
}

// Entry is one row of the leaderboard.
type Entry struct {
	Rank    int
	Name    string
	Avatar  string
	TotalXP int
	Streak  int
	Lessons int
	Self    bool
}

// Value returns the entry's score under m.
func (e Entry) Value(m Metric) int {
	switch m {
	case MetricStreak:
		return e.Streak
	case MetricLessons:
		return e.Lessons
	default:
		return e.TotalXP
	}
}

// Roster supplies the other players.
type Roster interface {
	List(ctx context.Context) ([]store.Peer, error)
}

// StaticRoster is a fixed in-memory Roster.
type StaticRoster []store.Peer

func (r StaticRoster) List(context.Context) ([]store.Peer, error) {
	return slices.Clone(r), nil
}

// SelfEntry builds the learner's entry from their state.
func SelfEntry(s progress.State) Entry {
	return Entry{
		Name:    SelfName,
		Avatar:  "🦉",
		TotalXP: s.TotalXP,
		Streak:  s.Streak,
		Lessons: s.CompletedLessons.Len(),
		Self:    true,
	}
}

// Board is a ranked leaderboard.
type Board struct {
	Metric  Metric
	Entries []Entry

	// SelfRank is the learner's rank even when it falls outside Entries.
	SelfRank int
}

// Rank merges self into the roster, sorts by m descending with ties broken
// by name, and keeps the top limit entries. limit <= 0 uses DefaultLimit.
func Rank(ctx context.Context, roster Roster, m Metric, self Entry, limit int) (Board, error) {
	peers, err := roster.List(ctx)
	if err != nil {
		return Board{}, fmt.Errorf("list roster: %w", err)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	entries := make([]Entry, 0, len(peers)+1)
	for _, p := range peers {
		entries = append(entries, Entry{
			Name:    p.Name,
			Avatar:  p.Avatar,
			TotalXP: p.TotalXP,
			Streak:  p.Streak,
			Lessons: p.Lessons,
		})
	}
	self.Self = true
	entries = append(entries, self)

	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Value(m), a.Value(m)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	b := Board{Metric: m}
	for i := range entries {
		entries[i].Rank = i + 1
		if entries[i].Self {
			b.SelfRank = i + 1
		}
	}
	b.Entries = entries[:min(limit, len(entries))]
	return b, nil
}
