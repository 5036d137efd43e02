package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoiceArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice("学校", []string{"school", "family", "water"}, 0)
	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(keyPress('j'))
	m, _ = m.Update(keyPress('j'))
	if m.Selected != 2 {
		t.Fatalf("selected = %d, want 2 (clamped)", m.Selected)
	}
	m, _ = m.Update(keyPress('k'))
	m, _ = m.Update(specialKey(tea.KeyEnter))

	got, ok := m.Chosen()
	if !ok || got != "family" {
		t.Errorf("chosen = %q, %v, want family", got, ok)
	}
	if m.IsCorrect() {
		t.Error("family should not be correct")
	}
}

func TestMultiChoiceNumberKeySubmits(t *testing.T) {
	m := NewMultiChoice("", []string{"school", "family"}, 0)
	m, _ = m.Update(keyPress('3'))
	if m.Submitted {
		t.Fatal("out-of-range number submitted")
	}
	m, _ = m.Update(keyPress('1'))
	if !m.IsCorrect() {
		t.Errorf("expected option 1 to be submitted and correct, got %+v", m)
	}

	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 0 {
		t.Error("selection moved after submit")
	}
}

func TestMultiChoiceView(t *testing.T) {
	m := NewMultiChoice("学校", []string{"school", "family"}, 0)
	view := m.View()
	for _, want := range []string{"学校", "▸ 1)  school", "2)  family"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTextInputTypingAndSubmit(t *testing.T) {
	ti := NewTextInput("type what you hear", 40)
	for _, r := range "gakkou" {
		ti, _ = ti.Update(keyPress(r))
	}
	if ti.Value() != "gakkou" {
		t.Fatalf("value = %q, want gakkou", ti.Value())
	}

	ti.Submit(true)
	ti, _ = ti.Update(keyPress('x'))
	if ti.Value() != "gakkou" || !ti.Submitted() {
		t.Errorf("input changed after submit: %q", ti.Value())
	}
	if !strings.Contains(ti.View(), "✓") {
		t.Error("submitted view should show the check mark")
	}
}
