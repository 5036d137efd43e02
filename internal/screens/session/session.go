// Package session is the lesson screen: one question at a time, with
// feedback after each answer and a summary at the end.
package session

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/owllearn/internal/content"
	"github.com/abhisek/owllearn/internal/lesson"
	"github.com/abhisek/owllearn/internal/router"
	"github.com/abhisek/owllearn/internal/screen"
	"github.com/abhisek/owllearn/internal/ui/components"
	"github.com/abhisek/owllearn/internal/ui/layout"
)

// answerWidth caps typed answers.
const answerWidth = 60

type phase int

const (
	phaseQuestion phase = iota
	phaseFeedback
	phaseQuitConfirm
	phaseOutOfHearts
	phaseSummary
	phaseError
)

// SessionScreen plays one lesson.
type SessionScreen struct {
	ctx    context.Context
	player *lesson.Player

	phase  phase
	resume phase // phase to return to when the quit prompt is declined

	question content.Question
	mc       components.MultiChoice
	input    components.TextInput

	hearts  int
	result  lesson.Result
	summary lesson.Summary
	err     error
}

var _ screen.Screen = (*SessionScreen)(nil)

// New creates a session screen over p. hearts is the learner's balance
// when the lesson opens.
func New(ctx context.Context, p *lesson.Player, hearts int) *SessionScreen {
	s := &SessionScreen{ctx: ctx, player: p, hearts: hearts}
	if q, ok := p.Current(); ok {
		s.load(q)
	} else {
		s.phase = phaseError
		s.err = lesson.ErrFinished
	}
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.phase == phaseQuestion && typed(s.question.Kind) {
		return s.input.Init()
	}
	return nil
}

func (s *SessionScreen) Title() string {
	return fmt.Sprintf("Lesson %s", s.player.Lesson())
}

// HandlesEscape keeps Esc for the quit prompt while the lesson runs.
func (s *SessionScreen) HandlesEscape() bool {
	switch s.phase {
	case phaseQuestion, phaseFeedback, phaseQuitConfirm:
		return true
	default:
		return false
	}
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuitConfirm:
		return []layout.KeyHint{{Key: "y", Description: "End lesson"}, {Key: "n", Description: "Keep going"}}
	case phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}, {Key: "Esc", Description: "Quit"}}
	case phaseQuestion:
		switch {
		case s.question.Kind.MultipleChoice():
			return []layout.KeyHint{{Key: "↑↓", Description: "Choose"}, {Key: "1-4", Description: "Pick"}, {Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Quit"}}
		case s.question.Kind == content.KindPhoneticPractice:
			return []layout.KeyHint{{Key: "Enter", Description: "Done practising"}, {Key: "Esc", Description: "Quit"}}
		default:
			return []layout.KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Quit"}}
		}
	default:
		return []layout.KeyHint{{Key: "Enter", Description: "Back to map"}}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateChangedMsg:
		s.hearts = msg.State.Hearts
		return s, nil
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseQuestion && typed(s.question.Kind) {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseQuitConfirm:
		switch key {
		case "y", "Y":
			s.player.Abandon(s.ctx)
			return s, pop
		case "n", "N", "esc":
			s.phase = s.resume
		}
		return s, nil

	case phaseFeedback:
		if key == "esc" {
			s.confirmQuit()
			return s, nil
		}
		return s, s.advance()

	case phaseOutOfHearts, phaseSummary, phaseError:
		return s, pop
	}

	if key == "esc" {
		s.confirmQuit()
		return s, nil
	}

	switch {
	case s.question.Kind.MultipleChoice():
		s.mc, _ = s.mc.Update(msg)
		if choice, ok := s.mc.Chosen(); ok {
			s.submit(choice)
		}
		return s, nil

	case s.question.Kind == content.KindPhoneticPractice:
		if key == "enter" {
			s.submit(content.PhoneticCompleted)
		}
		return s, nil
	}

	if key == "enter" {
		if strings.TrimSpace(s.input.Value()) != "" {
			s.submit(s.input.Value())
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) confirmQuit() {
	s.resume = s.phase
	s.phase = phaseQuitConfirm
}

func (s *SessionScreen) submit(answer string) {
	res, err := s.player.Submit(s.ctx, answer)
	if err != nil {
		s.phase = phaseError
		s.err = err
		return
	}
	s.result = res
	s.hearts = res.Hearts
	s.input.Submit(res.Correct)
	s.phase = phaseFeedback
}

// advance moves past the feedback for the last answer.
func (s *SessionScreen) advance() tea.Cmd {
	if s.result.OutOfHearts {
		s.phase = phaseOutOfHearts
		return nil
	}
	if q, ok := s.player.Current(); ok {
		s.load(q)
		return s.Init()
	}

	sum, err := s.player.Finish(s.ctx)
	if err != nil {
		s.phase = phaseError
		s.err = err
		return nil
	}
	s.summary = sum
	s.hearts = sum.State.Hearts
	s.phase = phaseSummary
	return nil
}

func (s *SessionScreen) load(q content.Question) {
	s.question = q
	s.phase = phaseQuestion
	s.result = lesson.Result{}
	if q.Kind.MultipleChoice() {
		s.mc = components.NewMultiChoice("", q.Options, slices.Index(q.Options, q.Answer))
	}
	if typed(q.Kind) {
		placeholder := "type what you hear"
		if q.Kind == content.KindWordOrder {
			placeholder = "type the sentence in order"
		}
		s.input = components.NewTextInput(placeholder, answerWidth)
	}
}

// typed reports whether the kind is answered with the text input.
func typed(k content.Kind) bool {
	return k == content.KindTypeHear || k == content.KindWordOrder
}

func pop() tea.Msg { return router.PopScreenMsg{} }
