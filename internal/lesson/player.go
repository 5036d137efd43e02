package lesson

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/owllearn/internal/content"
	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/store"
)

const (
	// XPPerCorrect is earned for every correct answer.
	XPPerCorrect = 10

	// PerfectBonusXP is added when a lesson finishes without mistakes.
	PerfectBonusXP = 5

	// PerfectBonusGems is paid on top of the completion gems for a
	// perfect lesson.
	PerfectBonusGems = 3
)

var (
	ErrNoQuestions = errors.New("lesson has no questions")
	ErrFinished    = errors.New("lesson already finished")
	ErrIncomplete  = errors.New("lesson has unanswered questions")
	ErrLocked      = errors.New("lesson is locked")
	ErrOutOfHearts = errors.New("no hearts left")
)

// Dispatcher applies progress actions. *progress.Store satisfies it.
type Dispatcher interface {
	Dispatch(progress.Action) progress.State
	State() progress.State
}

// Modifiers are the shop boosts active when the lesson starts.
type Modifiers struct {
	// XPMultiplier scales every XP award; values below 1 count as 1.
	XPMultiplier int

	// MistakeProtection keeps hearts on wrong answers.
	MistakeProtection bool
}

// Config wires a Player to its collaborators.
type Config struct {
	Dispatcher Dispatcher
	Events     store.EventRepo // optional activity log
	Modifiers  Modifiers
	Now        func() time.Time
	Logger     *slog.Logger
}

// Result is the outcome of one answer.
type Result struct {
	Correct   bool
	Expected  string
	XPGained  int
	HeartLost bool
	Hearts    int

	// Remaining is the number of questions still to answer.
	Remaining int

	// OutOfHearts ends the lesson; the learner should be sent to the shop.
	OutOfHearts bool
}

// Summary describes a finished lesson.
type Summary struct {
	SessionID  string
	Lesson     progress.LessonID
	Mistakes   int
	XPEarned   int
	GemsEarned int
	Perfect    bool
	StageDone  bool
	State      progress.State
}

// Player runs one lesson. It is not safe for concurrent use.
type Player struct {
	cfg       Config
	sessionID string
	lesson    progress.LessonID
	questions []content.Question

	index    int
	mistakes int
	xpEarned int
	done     bool
}

// Start begins a lesson over questions.
func Start(cfg Config, id progress.LessonID, questions []content.Question) (*Player, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Modifiers.XPMultiplier < 1 {
		cfg.Modifiers.XPMultiplier = 1
	}
	return &Player{
		cfg:       cfg,
		sessionID: uuid.NewString(),
		lesson:    id,
		questions: questions,
	}, nil
}

// SessionID identifies this run in the activity log.
func (p *Player) SessionID() string { return p.sessionID }

// Lesson returns the lesson being played.
func (p *Player) Lesson() progress.LessonID { return p.lesson }

// Index returns the 0-based position of the current question.
func (p *Player) Index() int { return p.index }

// Len returns the number of questions.
func (p *Player) Len() int { return len(p.questions) }

// Mistakes returns the number of wrong answers so far.
func (p *Player) Mistakes() int { return p.mistakes }

// Current returns the question awaiting an answer. ok is false once every
// question has been answered or the lesson ended.
func (p *Player) Current() (q content.Question, ok bool) {
	if p.done || p.index >= len(p.questions) {
		return content.Question{}, false
	}
	return p.questions[p.index], true
}

// Submit answers the current question.
func (p *Player) Submit(ctx context.Context, answer string) (Result, error) {
	q, ok := p.Current()
	if !ok {
		if p.done {
			return Result{}, ErrFinished
		}
		return Result{}, fmt.Errorf("%w: all %d questions answered", ErrFinished, len(p.questions))
	}

	res := Result{Correct: content.Check(q, answer), Expected: q.Answer}
	var st progress.State
	switch {
	case res.Correct:
		res.XPGained = XPPerCorrect * p.cfg.Modifiers.XPMultiplier
		p.xpEarned += res.XPGained
		st = p.cfg.Dispatcher.Dispatch(progress.GainXP{Amount: res.XPGained})
	case p.cfg.Modifiers.MistakeProtection:
		p.mistakes++
		st = p.cfg.Dispatcher.State()
	default:
		p.mistakes++
		res.HeartLost = true
		st = p.cfg.Dispatcher.Dispatch(progress.LoseHeart{})
	}

	p.record(func() error {
		return p.cfg.Events.AppendAnswer(ctx, store.AnswerEventData{
			Timestamp:     p.cfg.Now(),
			SessionID:     p.sessionID,
			LessonID:      p.lesson.String(),
			QuestionIndex: p.index,
			Kind:          string(q.Kind),
			Submitted:     answer,
			Correct:       res.Correct,
			HeartLost:     res.HeartLost,
		})
	})

	p.index++
	res.Hearts = st.Hearts
	res.Remaining = len(p.questions) - p.index

	if res.HeartLost && st.Hearts == 0 {
		res.OutOfHearts = true
		p.end(ctx, store.OutcomeOutOfHearts, false)
	}
	return res, nil
}

// Finish completes the lesson once every question is answered.
func (p *Player) Finish(ctx context.Context) (Summary, error) {
	if p.done {
		return Summary{}, ErrFinished
	}
	if p.index < len(p.questions) {
		return Summary{}, fmt.Errorf("%w: %d of %d answered", ErrIncomplete, p.index, len(p.questions))
	}

	before := p.cfg.Dispatcher.State()
	st := p.cfg.Dispatcher.Dispatch(progress.CompleteLesson{ID: p.lesson})

	sum := Summary{
		SessionID:  p.sessionID,
		Lesson:     p.lesson,
		Mistakes:   p.mistakes,
		Perfect:    p.mistakes == 0,
		GemsEarned: progress.LessonCompletionGems,
		StageDone:  !before.StageCompleted(p.lesson.Stage) && st.StageCompleted(p.lesson.Stage),
	}
	if sum.Perfect {
		bonus := PerfectBonusXP * p.cfg.Modifiers.XPMultiplier
		p.xpEarned += bonus
		p.cfg.Dispatcher.Dispatch(progress.GainXP{Amount: bonus})
		st = p.cfg.Dispatcher.Dispatch(progress.EarnGems{Amount: PerfectBonusGems})
		sum.GemsEarned += PerfectBonusGems
	}
	sum.XPEarned = p.xpEarned
	sum.State = st

	p.end(ctx, store.OutcomeCompleted, sum.StageDone)
	return sum, nil
}

// Abandon ends an unfinished lesson without completing it.
func (p *Player) Abandon(ctx context.Context) {
	if p.done {
		return
	}
	p.end(ctx, store.OutcomeAbandoned, false)
}

func (p *Player) end(ctx context.Context, outcome string, stageDone bool) {
	p.done = true
	p.record(func() error {
		return p.cfg.Events.AppendLesson(ctx, store.LessonEventData{
			Timestamp: p.cfg.Now(),
			SessionID: p.sessionID,
			LessonID:  p.lesson.String(),
			Outcome:   outcome,
			Mistakes:  p.mistakes,
			XPEarned:  p.xpEarned,
			Perfect:   outcome == store.OutcomeCompleted && p.mistakes == 0,
			StageDone: stageDone,
		})
	})
}

// record writes to the activity log. Failures are logged and never
// interrupt the lesson.
func (p *Player) record(fn func() error) {
	if p.cfg.Events == nil {
		return
	}
	if err := fn(); err != nil {
		p.cfg.Logger.Warn("recording lesson activity failed", "session", p.sessionID, "error", err)
	}
}
