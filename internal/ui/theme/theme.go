package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/owllearn/internal/unlock"
)

// Color palette
var (
	Owl     = lipgloss.Color("#58CC02") // Feather Green
	Sky     = lipgloss.Color("#1CB0F6") // Sky Blue
	Gold    = lipgloss.Color("#FFC800") // Gem Gold
	Flame   = lipgloss.Color("#FF9600") // Streak Orange
	Heart   = lipgloss.Color("#FF4B4B") // Heart Red
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
	BgCard  = lipgloss.Color("#1E293B") // Slate 800
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Owl)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Counters
var (
	Hearts = lipgloss.NewStyle().Foreground(Heart).Bold(true)
	Gems   = lipgloss.NewStyle().Foreground(Gold).Bold(true)
	Streak = lipgloss.NewStyle().Foreground(Flame).Bold(true)
	XP     = lipgloss.NewStyle().Foreground(Sky).Bold(true)
)

// Answers
var (
	Correct = lipgloss.NewStyle().
		Foreground(Owl).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Heart).
			Bold(true)
)

// Card frames a block of output.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 1)

// Skill tree nodes
var (
	nodeLocked    = lipgloss.NewStyle().Foreground(TextDim)
	nodeAvailable = lipgloss.NewStyle().Foreground(Sky)
	nodeCurrent   = lipgloss.NewStyle().Foreground(Gold).Bold(true)
	nodeCompleted = lipgloss.NewStyle().Foreground(Owl)
)

// Node returns the style of a skill tree node with status st.
func Node(st unlock.Status) lipgloss.Style {
	switch st {
	case unlock.Completed:
		return nodeCompleted
	case unlock.Current:
		return nodeCurrent
	case unlock.Available:
		return nodeAvailable
	default:
		return nodeLocked
	}
}
