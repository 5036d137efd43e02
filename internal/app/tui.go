package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/owllearn/internal/lesson"
	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/router"
	"github.com/abhisek/owllearn/internal/screen"
	"github.com/abhisek/owllearn/internal/screens/session"
	"github.com/abhisek/owllearn/internal/screens/skillmap"
	"github.com/abhisek/owllearn/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	state  progress.State
	width  int
	height int
}

// newAppModel creates an AppModel showing screens, bottom first.
func newAppModel(st progress.State, first screen.Screen, rest ...screen.Screen) AppModel {
	r := router.New(first)
	for _, s := range rest {
		r.Push(s)
	}
	return AppModel{router: r, state: st}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StateChangedMsg:
		m.state = msg.State

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), layout.Counters{
		Hearts: m.state.Hearts,
		Gems:   m.state.Gems,
		Streak: m.state.Streak,
	}, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the interactive client on the skill map. When start is not
// nil, its lesson opens on top of the map. Run returns once the learner
// quits.
func (a *App) Run(ctx context.Context, start *lesson.Player, opts ...tea.ProgramOption) error {
	st := a.State()
	var rest []screen.Screen
	if start != nil {
		rest = append(rest, session.New(ctx, start, st.Hearts))
	}
	p := tea.NewProgram(newAppModel(st, skillmap.New(ctx, a), rest...), opts...)

	done := make(chan struct{})
	defer close(done)
	cancel := a.forwardState(done, p.Send)
	defer cancel()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// forwardState delivers every state change to send as a
// screen.StateChangedMsg until done is closed.
func (a *App) forwardState(done <-chan struct{}, send func(tea.Msg)) (cancel func()) {
	relay := newStateRelay()
	unsubscribe := a.progress.Subscribe(relay.push)
	go relay.forward(done, send)
	return unsubscribe
}

// stateRelay hands states from store subscribers to the program. Only the
// newest undelivered state is kept, so push never blocks the store while
// the program is busy in Update.
type stateRelay struct {
	ch chan progress.State
}

func newStateRelay() *stateRelay {
	return &stateRelay{ch: make(chan progress.State, 1)}
}

func (r *stateRelay) push(s progress.State) {
	for {
		select {
		case r.ch <- s:
			return
		default:
		}
		select {
		case <-r.ch:
		default:
		}
	}
}

func (r *stateRelay) forward(done <-chan struct{}, send func(tea.Msg)) {
	for {
		select {
		case <-done:
			return
		case s := <-r.ch:
			send(screen.StateChangedMsg{State: s})
		}
	}
}
