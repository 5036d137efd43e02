package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that use Esc themselves instead
// of letting the app pop them.
type EscapeHandler interface {
	HandlesEscape() bool
}

// StateChangedMsg carries the learner's state after a mutation. The router
// delivers it to every screen on the stack.
type StateChangedMsg struct {
	State progress.State
}
