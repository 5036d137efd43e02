package skillmap

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/owllearn/internal/content"
	"github.com/abhisek/owllearn/internal/curriculum"
	"github.com/abhisek/owllearn/internal/lesson"
	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/router"
	"github.com/abhisek/owllearn/internal/screen"
	"github.com/abhisek/owllearn/internal/screens/session"
	"github.com/abhisek/owllearn/internal/screens/shopfront"
	"github.com/abhisek/owllearn/internal/shop"
	"github.com/abhisek/owllearn/internal/unlock"
)

type fakeLearner struct {
	store   *progress.Store
	shape   curriculum.Shape
	started []progress.LessonID
}

func newLearner(st progress.State) *fakeLearner {
	return &fakeLearner{store: progress.NewStore(st), shape: curriculum.Default()}
}

func (f *fakeLearner) State() progress.State   { return f.store.State() }
func (f *fakeLearner) Shape() curriculum.Shape { return f.shape }
func (f *fakeLearner) Shop() *shop.Shop        { return shop.New(f.store, nil) }

func (f *fakeLearner) StartLesson(_ context.Context, stage, sub int) (*lesson.Player, error) {
	id := progress.LessonID{Stage: stage, SubStage: sub}
	f.started = append(f.started, id)
	q := content.Question{Kind: content.KindPhoneticPractice, Prompt: "学校", Answer: content.PhoneticCompleted}
	return lesson.Start(lesson.Config{Dispatcher: f.store}, id, []content.Question{q})
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	return msg.Screen
}

func completed(n int) progress.State {
	st := progress.Defaults()
	shape := curriculum.Default()
	var i int
	for node := range shape.Lessons() {
		if i == n {
			break
		}
		st = progress.Apply(st, progress.CompleteLesson{ID: progress.LessonID{Stage: node.Stage, SubStage: node.SubStage}})
		i++
	}
	return st
}

func TestSkillMap_CursorStartsAtFrontier(t *testing.T) {
	scr := New(context.Background(), newLearner(completed(7)))
	if scr.stage != 1 || scr.sub != 2 {
		t.Errorf("cursor = (%d,%d), want (1,2) for lesson 2-3", scr.stage, scr.sub)
	}
	if scr.Title() != "Skill Map" {
		t.Errorf("Title = %q", scr.Title())
	}
}

func TestSkillMap_Navigation(t *testing.T) {
	scr := New(context.Background(), newLearner(progress.Defaults()))

	scr.Update(keyPress('k'))
	scr.Update(specialKey(tea.KeyLeft))
	if scr.stage != 0 || scr.sub != 0 {
		t.Errorf("cursor moved past the top-left: (%d,%d)", scr.stage, scr.sub)
	}

	for range 30 {
		scr.Update(keyPress('j'))
	}
	for range 10 {
		scr.Update(keyPress('l'))
	}
	if scr.stage != 19 || scr.sub != 4 {
		t.Errorf("cursor = (%d,%d), want clamped (19,4)", scr.stage, scr.sub)
	}

	scr.Update(keyPress('n'))
	if scr.stage != 0 || scr.sub != 0 {
		t.Errorf("n should return to the frontier, got (%d,%d)", scr.stage, scr.sub)
	}
}

func TestSkillMap_EnterCurrentStartsLesson(t *testing.T) {
	l := newLearner(progress.Defaults())
	scr := New(context.Background(), l)

	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if _, ok := pushed(t, cmd).(*session.SessionScreen); !ok {
		t.Fatal("expected a session screen")
	}
	if len(l.started) != 1 || l.started[0] != (progress.LessonID{Stage: 1, SubStage: 1}) {
		t.Errorf("started = %v", l.started)
	}
}

func TestSkillMap_EnterLockedShowsNotice(t *testing.T) {
	l := newLearner(progress.Defaults())
	scr := New(context.Background(), l)
	scr.Update(keyPress('j'))

	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("locked node should not navigate")
	}
	if len(l.started) != 0 {
		t.Error("locked node started a lesson")
	}
	if !strings.Contains(scr.View(100, 40), "2-1 is locked") {
		t.Error("expected a locked notice")
	}
}

func TestSkillMap_EnterWithoutHeartsOpensShop(t *testing.T) {
	st := progress.Defaults()
	st.Hearts = 0
	l := newLearner(st)
	scr := New(context.Background(), l)

	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if _, ok := pushed(t, cmd).(*shopfront.ShopScreen); !ok {
		t.Fatal("expected the shop screen")
	}
	if len(l.started) != 0 {
		t.Error("lesson started without hearts")
	}
}

func TestSkillMap_StateChangedRefreshesNodes(t *testing.T) {
	scr := New(context.Background(), newLearner(progress.Defaults()))
	scr.Update(screen.StateChangedMsg{State: completed(1)})

	if got := scr.views[0].Nodes[0].Status; got != unlock.Completed {
		t.Errorf("1-1 status = %v, want Completed", got)
	}
	if got := scr.views[0].Nodes[1].Status; got != unlock.Current {
		t.Errorf("1-2 status = %v, want Current", got)
	}
}

func TestSkillMap_CourseComplete(t *testing.T) {
	all := curriculum.Default().TotalLessons()
	scr := New(context.Background(), newLearner(completed(all)))

	if !scr.CourseComplete() {
		t.Fatal("expected the course to be complete")
	}
	if scr.stage != 19 || scr.sub != 4 {
		t.Errorf("cursor = (%d,%d), want the last node", scr.stage, scr.sub)
	}
	if view := scr.View(120, 40); !strings.Contains(view, "Course complete!") {
		t.Errorf("view missing the course-complete banner:\n%s", view)
	}

	// Finished lessons stay replayable.
	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if _, ok := pushed(t, cmd).(*session.SessionScreen); !ok {
		t.Error("expected the last lesson to be replayable")
	}
}

func TestSkillMap_ViewScrollsToCursor(t *testing.T) {
	scr := New(context.Background(), newLearner(progress.Defaults()))
	for range 19 {
		scr.Update(keyPress('j'))
	}
	view := scr.View(120, 16)
	if !strings.Contains(view, fmt.Sprintf("Stage %2d", 20)) {
		t.Errorf("last stage not visible after scrolling:\n%s", view)
	}
	if strings.Contains(view, fmt.Sprintf("Stage %2d", 1)) {
		t.Error("first stage should have scrolled out of view")
	}
}
