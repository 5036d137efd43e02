// Package skillmap is the home screen: the 20-stage tree of lessons with
// a cursor for picking the next one to play.
package skillmap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/owllearn/internal/curriculum"
	"github.com/abhisek/owllearn/internal/lesson"
	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/router"
	"github.com/abhisek/owllearn/internal/screen"
	"github.com/abhisek/owllearn/internal/screens/session"
	"github.com/abhisek/owllearn/internal/screens/shopfront"
	"github.com/abhisek/owllearn/internal/shop"
	"github.com/abhisek/owllearn/internal/ui/components"
	"github.com/abhisek/owllearn/internal/ui/layout"
	"github.com/abhisek/owllearn/internal/ui/theme"
	"github.com/abhisek/owllearn/internal/unlock"
)

// Learner is the profile the map plays against. *app.App satisfies it.
type Learner interface {
	State() progress.State
	Shape() curriculum.Shape
	StartLesson(ctx context.Context, stage, subStage int) (*lesson.Player, error)
	Shop() *shop.Shop
}

// row is either a band header or a stage (index into views).
type row struct {
	header curriculum.Band
	stage  int
}

// SkillMapScreen shows every lesson node and its status.
type SkillMapScreen struct {
	ctx     context.Context
	learner Learner
	shape   curriculum.Shape
	state   progress.State
	views   []unlock.StageView
	rows    []row

	// Cursor, 0-based.
	stage, sub int

	scrollOffset int
	notice       string
}

var _ screen.Screen = (*SkillMapScreen)(nil)

// New creates the skill map with the cursor on the next lesson.
func New(ctx context.Context, l Learner) *SkillMapScreen {
	s := &SkillMapScreen{ctx: ctx, learner: l, shape: l.Shape()}
	s.refresh(l.State())
	s.jumpToFrontier()
	return s
}

func (s *SkillMapScreen) Init() tea.Cmd { return nil }

func (s *SkillMapScreen) Title() string { return "Skill Map" }

func (s *SkillMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓←→", Description: "Move"},
		{Key: "Enter", Description: "Play"},
		{Key: "n", Description: "Next lesson"},
		{Key: "s", Description: "Shop"},
		{Key: "q", Description: "Quit"},
	}
}

// CourseComplete reports whether every lesson of the tree is completed.
func (s *SkillMapScreen) CourseComplete() bool {
	f := s.state.Frontier()
	return !s.shape.Contains(f.Stage, f.SubStage)
}

func (s *SkillMapScreen) refresh(st progress.State) {
	s.state = st
	s.views = unlock.Map(st, s.shape)
	s.rows = s.rows[:0]
	var band curriculum.Band
	for i, v := range s.views {
		if v.Band != band {
			band = v.Band
			s.rows = append(s.rows, row{header: band, stage: -1})
		}
		s.rows = append(s.rows, row{stage: i})
	}
}

func (s *SkillMapScreen) jumpToFrontier() {
	f := s.state.Frontier()
	if !s.shape.Contains(f.Stage, f.SubStage) {
		s.stage, s.sub = s.shape.Stages-1, s.shape.SubStagesPerStage-1
		return
	}
	s.stage, s.sub = f.Stage-1, f.SubStage-1
}

func (s *SkillMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateChangedMsg:
		s.refresh(msg.State)
		return s, nil

	case tea.KeyPressMsg:
		s.notice = ""
		switch msg.String() {
		case "up", "k":
			s.stage = max(s.stage-1, 0)
		case "down", "j":
			s.stage = min(s.stage+1, len(s.views)-1)
		case "left", "h":
			s.sub = max(s.sub-1, 0)
		case "right", "l":
			s.sub = min(s.sub+1, s.shape.SubStagesPerStage-1)
		case "n":
			s.jumpToFrontier()
		case "s":
			return s, push(shopfront.New(s.ctx, s.learner.Shop(), s.state.Gems, ""))
		case "enter":
			return s, s.enter()
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

// enter opens the node under the cursor.
func (s *SkillMapScreen) enter() tea.Cmd {
	s.refresh(s.learner.State())
	stage, sub := s.stage+1, s.sub+1
	id := progress.LessonID{Stage: stage, SubStage: sub}

	switch unlock.Enter(s.state, s.shape, stage, sub) {
	case unlock.RouteNone:
		s.notice = fmt.Sprintf("Lesson %s is locked. Finish the lessons before it first.", id)
		return nil
	case unlock.RouteShop:
		return push(shopfront.New(s.ctx, s.learner.Shop(), s.state.Gems,
			"You're out of hearts! Refill them to keep learning."))
	}

	p, err := s.learner.StartLesson(s.ctx, stage, sub)
	switch {
	case errors.Is(err, lesson.ErrOutOfHearts):
		return push(shopfront.New(s.ctx, s.learner.Shop(), s.state.Gems,
			"You're out of hearts! Refill them to keep learning."))
	case err != nil:
		s.notice = fmt.Sprintf("Could not start lesson %s: %v", id, err)
		return nil
	}
	return push(session.New(s.ctx, p, s.state.Hearts))
}

func push(scr screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

// cursorRow returns the index into rows of the cursor's stage.
func (s *SkillMapScreen) cursorRow() int {
	for i, r := range s.rows {
		if r.stage == s.stage {
			return i
		}
	}
	return 0
}

func (s *SkillMapScreen) adjustScroll(visible int) {
	cur := s.cursorRow()
	if cur < s.scrollOffset {
		s.scrollOffset = cur
	}
	if cur >= s.scrollOffset+visible {
		s.scrollOffset = cur - visible + 1
	}
	if cur > 0 && s.rows[cur-1].stage < 0 && s.scrollOffset == cur {
		s.scrollOffset-- // keep the band header in view
	}
}

func (s *SkillMapScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + s.renderBanner())
	b.WriteString("\n\n")

	visible := max(height-6, 1)
	s.adjustScroll(visible)
	end := min(s.scrollOffset+visible, len(s.rows))
	for _, r := range s.rows[s.scrollOffset:end] {
		if r.stage < 0 {
			b.WriteString("  " + theme.Title.Render(r.header.DisplayName()))
		} else {
			b.WriteString(s.renderStageRow(s.views[r.stage]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	if s.notice != "" {
		b.WriteString(theme.Incorrect.Render(s.notice))
	} else {
		b.WriteString(components.Legend())
	}
	return b.String()
}

func (s *SkillMapScreen) renderBanner() string {
	if s.CourseComplete() {
		return theme.Correct.Render("🎉 Course complete! Every lesson is finished. Replay any node to keep practising.")
	}
	f := s.state.Frontier()
	v := s.views[f.Stage-1]
	bar := components.ProgressBar{
		Label: fmt.Sprintf("Next: %s %s", v.Theme.Icon, f),
		Done:  v.Completed,
		Total: len(v.Nodes),
		Width: 50,
	}
	return bar.View()
}

func (s *SkillMapScreen) renderStageRow(v unlock.StageView) string {
	var b strings.Builder
	prefix := "    "
	if v.Stage-1 == s.stage {
		prefix = "  ▸ "
	}
	title := fmt.Sprintf("%s%s Stage %2d %-10s", prefix, v.Theme.Icon, v.Stage, v.Theme.Name)
	if v.Done() {
		b.WriteString(theme.Correct.Render(title))
	} else {
		b.WriteString(theme.Body.Render(title))
	}

	for i, n := range v.Nodes {
		b.WriteString(" ")
		style := theme.Node(n.Status)
		if v.Stage-1 == s.stage && i == s.sub {
			style = style.Reverse(true)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s %s", n.Status.Icon(), n.ID)))
	}
	return b.String()
}
