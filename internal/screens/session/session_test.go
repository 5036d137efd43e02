package session

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/owllearn/internal/content"
	"github.com/abhisek/owllearn/internal/lesson"
	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/router"
	"github.com/abhisek/owllearn/internal/screen"
)

var questions = []content.Question{
	{Kind: content.KindMeaningMC, Prompt: "学校", Options: []string{"school", "family", "water"}, Answer: "school", Translation: "school"},
	{Kind: content.KindTypeHear, Audio: "がっこう", Answer: "gakkou"},
	{Kind: content.KindWordOrder, Tiles: []string{"です", "学校"}, Answer: "学校 です"},
	{Kind: content.KindPhoneticPractice, Prompt: "学校", Phonetic: "gakkou", Answer: content.PhoneticCompleted},
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(scr *SessionScreen, text string) {
	for _, r := range text {
		scr.Update(keyPress(r))
	}
}

func newSession(t *testing.T, initial progress.State, qs []content.Question) (*SessionScreen, *progress.Store) {
	t.Helper()
	st := progress.NewStore(initial)
	p, err := lesson.Start(lesson.Config{Dispatcher: st}, progress.LessonID{Stage: 1, SubStage: 1}, qs)
	if err != nil {
		t.Fatal(err)
	}
	return New(context.Background(), p, initial.Hearts), st
}

func isPop(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(router.PopScreenMsg)
	return ok
}

func TestSessionScreen_PerfectLesson(t *testing.T) {
	scr, st := newSession(t, progress.Defaults(), questions)

	if scr.Title() != "Lesson 1-1" {
		t.Errorf("Title = %q", scr.Title())
	}

	// Multiple choice by number key.
	scr.Update(keyPress('1'))
	if scr.phase != phaseFeedback || !scr.result.Correct {
		t.Fatalf("after MC: phase=%d correct=%v", scr.phase, scr.result.Correct)
	}
	scr.Update(keyPress(' '))

	// Typed answers.
	typeText(scr, "gakkou")
	scr.Update(specialKey(tea.KeyEnter))
	if !scr.result.Correct {
		t.Fatalf("typed answer rejected: %+v", scr.result)
	}
	scr.Update(specialKey(tea.KeyEnter))

	typeText(scr, "学校 です")
	scr.Update(specialKey(tea.KeyEnter))
	if !scr.result.Correct {
		t.Fatalf("word order rejected: %+v", scr.result)
	}
	scr.Update(specialKey(tea.KeyEnter))

	// Pronunciation drill completes on Enter.
	if !strings.Contains(scr.View(80, 20), "Say it aloud") {
		t.Error("phonetic question should prompt to say it aloud")
	}
	scr.Update(specialKey(tea.KeyEnter))
	scr.Update(specialKey(tea.KeyEnter))

	if scr.phase != phaseSummary {
		t.Fatalf("phase = %d, want summary", scr.phase)
	}
	if !scr.summary.Perfect {
		t.Error("expected a perfect lesson")
	}
	if !st.State().CompletedLessons.Has(progress.LessonID{Stage: 1, SubStage: 1}) {
		t.Error("lesson not completed in the store")
	}
	if !strings.Contains(scr.View(80, 20), "Perfect lesson!") {
		t.Error("summary should celebrate a perfect lesson")
	}
	if scr.HandlesEscape() {
		t.Error("summary should let Esc go back")
	}

	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if !isPop(cmd) {
		t.Error("expected Enter on the summary to pop the screen")
	}
}

func TestSessionScreen_EmptyTypedAnswerIsIgnored(t *testing.T) {
	scr, _ := newSession(t, progress.Defaults(), questions[1:2])
	scr.Update(specialKey(tea.KeyEnter))
	if scr.phase != phaseQuestion {
		t.Errorf("phase = %d, want question after an empty submit", scr.phase)
	}
}

func TestSessionScreen_WrongAnswerCostsAHeart(t *testing.T) {
	scr, st := newSession(t, progress.Defaults(), questions[:1])

	scr.Update(keyPress('2'))
	if scr.result.Correct || !scr.result.HeartLost {
		t.Fatalf("result = %+v, want a lost heart", scr.result)
	}
	if st.State().Hearts != progress.MaxHearts-1 || scr.hearts != progress.MaxHearts-1 {
		t.Errorf("hearts store=%d screen=%d", st.State().Hearts, scr.hearts)
	}
	if !strings.Contains(scr.View(80, 20), "Answer: school") {
		t.Error("feedback should show the expected answer")
	}
}

func TestSessionScreen_OutOfHearts(t *testing.T) {
	initial := progress.Defaults()
	initial.Hearts = 1
	scr, st := newSession(t, initial, questions)

	scr.Update(keyPress('3'))
	scr.Update(keyPress(' '))
	if scr.phase != phaseOutOfHearts {
		t.Fatalf("phase = %d, want out of hearts", scr.phase)
	}
	if st.State().Hearts != 0 {
		t.Errorf("hearts = %d, want 0", st.State().Hearts)
	}
	_, cmd := scr.Update(keyPress('x'))
	if !isPop(cmd) {
		t.Error("expected any key to pop after running out of hearts")
	}
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	scr, st := newSession(t, progress.Defaults(), questions)

	scr.Update(specialKey(tea.KeyEscape))
	if scr.phase != phaseQuitConfirm || !scr.HandlesEscape() {
		t.Fatalf("phase = %d, want quit confirm", scr.phase)
	}

	scr.Update(keyPress('n'))
	if scr.phase != phaseQuestion {
		t.Fatalf("phase = %d, want question after declining", scr.phase)
	}

	scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if !isPop(cmd) {
		t.Error("expected confirming to pop the screen")
	}
	if _, ok := scr.player.Current(); ok {
		t.Error("lesson should be abandoned")
	}
	if st.State().CompletedLessons.Len() != 0 {
		t.Error("abandoned lesson must not complete")
	}
}

func TestSessionScreen_StateChangedUpdatesHearts(t *testing.T) {
	scr, _ := newSession(t, progress.Defaults(), questions)
	st := progress.Defaults()
	st.Hearts = 2
	scr.Update(screen.StateChangedMsg{State: st})
	if scr.hearts != 2 {
		t.Errorf("hearts = %d, want 2", scr.hearts)
	}
}

func TestSessionScreen_KeyHints(t *testing.T) {
	scr, _ := newSession(t, progress.Defaults(), questions)
	if len(scr.KeyHints()) != 4 {
		t.Errorf("MC hints = %d, want 4", len(scr.KeyHints()))
	}
}
