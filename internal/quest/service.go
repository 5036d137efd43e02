package quest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/store"
)

var (
	ErrUnknownQuest    = errors.New("unknown quest")
	ErrQuestIncomplete = errors.New("quest not complete")
	ErrAlreadyClaimed  = errors.New("quest reward already claimed")
)

// Dispatcher applies progress actions. *progress.Store satisfies it.
type Dispatcher interface {
	Dispatch(progress.Action) progress.State
	State() progress.State
}

// Status is a quest's progress in its current window.
type Status struct {
	Quest
	Window   Window
	Progress int
	Claimed  bool
}

// Complete reports whether the target is reached.
func (s Status) Complete() bool {
	return s.Progress >= s.Target
}

// Percent returns progress as a whole percentage, capped at 100.
func (s Status) Percent() int {
	if s.Target <= 0 {
		return 100
	}
	return min(s.Progress*100/s.Target, 100)
}

// Service computes quest progress from the activity log.
type Service struct {
	d      Dispatcher
	events store.EventRepo
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New returns a Service reading lesson events and claims from events.
func New(d Dispatcher, events store.EventRepo, opts ...Option) *Service {
	s := &Service{d: d, events: events, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the status of every quest.
func (s *Service) List(ctx context.Context) ([]Status, error) {
	out := make([]Status, 0, len(quests))
	for _, q := range quests {
		st, err := s.status(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// Claim pays the reward of a completed quest once per window.
func (s *Service) Claim(ctx context.Context, id string) (Status, progress.State, error) {
	q, ok := Lookup(id)
	if !ok {
		return Status{}, progress.State{}, fmt.Errorf("%w: %q", ErrUnknownQuest, id)
	}
	st, err := s.status(ctx, q)
	if err != nil {
		return Status{}, progress.State{}, err
	}
	if st.Claimed {
		return st, progress.State{}, ErrAlreadyClaimed
	}
	if !st.Complete() {
		return st, progress.State{}, fmt.Errorf("%w: %d/%d", ErrQuestIncomplete, st.Progress, st.Target)
	}

	err = s.events.AppendQuestClaim(ctx, store.QuestClaimData{
		Timestamp: s.now(),
		QuestID:   q.ID,
		WindowKey: st.Window.Key,
		Reward:    q.Reward,
	})
	if err != nil {
		return st, progress.State{}, fmt.Errorf("record claim: %w", err)
	}

	state := s.d.Dispatch(progress.EarnGems{Amount: q.Reward})
	st.Claimed = true
	s.logger.Info("quest claimed", "quest", q.ID, "window", st.Window.Key, "reward", q.Reward)
	return st, state, nil
}

func (s *Service) status(ctx context.Context, q Quest) (Status, error) {
	w := WindowOf(q.Scope, s.now())
	st := Status{Quest: q, Window: w}

	if q.Metric == MetricStreak {
		st.Progress = s.d.State().Streak
	} else {
		lessons, err := s.events.QueryLessons(ctx, store.QueryOpts{
			From: w.Start,
			To:   w.End.Add(-time.Millisecond),
		})
		if err != nil {
			return Status{}, fmt.Errorf("quest %s: %w", q.ID, err)
		}
		st.Progress = count(q.Metric, lessons)
	}

	claimed, err := s.events.HasQuestClaim(ctx, q.ID, w.Key)
	if err != nil {
		return Status{}, fmt.Errorf("quest %s: %w", q.ID, err)
	}
	st.Claimed = claimed
	return st, nil
}

func count(m Metric, lessons []store.LessonEvent) int {
	n := 0
	for _, l := range lessons {
		completed := l.Outcome == store.OutcomeCompleted
		switch m {
		case MetricLessons:
			if completed {
				n++
			}
		case MetricXP:
			n += l.XPEarned
		case MetricPerfect:
			if completed && l.Perfect {
				n++
			}
		case MetricStages:
			if completed && l.StageDone {
				n++
			}
		}
	}
	return n
}
