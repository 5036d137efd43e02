package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/owllearn/internal/content"
	"github.com/abhisek/owllearn/internal/ui/components"
	"github.com/abhisek/owllearn/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch s.phase {
	case phaseQuitConfirm:
		return renderQuitConfirm(width)
	case phaseFeedback:
		return s.renderProgress(width) + "\n\n" + s.renderFeedback(width)
	case phaseOutOfHearts:
		return renderOutOfHearts(width)
	case phaseSummary:
		return s.renderSummary(width)
	case phaseError:
		return renderError(width, s.err)
	default:
		return s.renderProgress(width) + "\n\n" + s.renderQuestion(width)
	}
}

func (s *SessionScreen) renderProgress(width int) string {
	bar := components.ProgressBar{
		Label: fmt.Sprintf("Question %d/%d", min(s.player.Index()+1, s.player.Len()), s.player.Len()),
		Done:  s.player.Index(),
		Total: s.player.Len(),
		Width: min(width-16, 70),
	}
	hearts := theme.Hearts.Render(strings.Repeat("❤", s.hearts))
	return "  " + bar.View() + "   " + hearts
}

func (s *SessionScreen) renderQuestion(width int) string {
	q := s.question
	var b strings.Builder

	if q.Instruction != "" {
		b.WriteString(center(width, theme.Subtitle.Render(q.Instruction)))
		b.WriteString("\n\n")
	}
	if q.Prompt != "" {
		b.WriteString(center(width, theme.Title.Render(q.Prompt)))
		b.WriteString("\n")
	}
	if q.Audio != "" && q.Prompt == "" {
		b.WriteString(center(width, theme.Hint.Render("🔊 "+q.Audio)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case q.Kind.MultipleChoice():
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	case q.Kind == content.KindPhoneticPractice:
		if q.Phonetic != "" {
			b.WriteString(center(width, theme.XP.Render(q.Phonetic)))
			b.WriteString("\n\n")
		}
		b.WriteString(center(width, theme.Body.Render("Say it aloud, then press Enter.")))
	default:
		if q.Kind == content.KindWordOrder && len(q.Tiles) > 0 {
			b.WriteString(center(width, theme.Card.Render(strings.Join(q.Tiles, "  "))))
			b.WriteString("\n\n")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "> "+s.input.View()))
	}

	if q.Hint != "" {
		b.WriteString("\n\n")
		b.WriteString(center(width, theme.Hint.Render("hint: "+q.Hint)))
	}
	return b.String()
}

func (s *SessionScreen) renderFeedback(width int) string {
	var b strings.Builder
	res := s.result

	if res.Correct {
		b.WriteString(center(width, theme.Correct.Render(fmt.Sprintf("Correct! +%d XP", res.XPGained))))
	} else {
		b.WriteString(center(width, theme.Incorrect.Render("Not quite.")))
		b.WriteString("\n")
		b.WriteString(center(width, theme.Subtitle.Render("Answer: "+res.Expected)))
		if res.HeartLost {
			b.WriteString("\n")
			b.WriteString(center(width, theme.Hearts.Render(fmt.Sprintf("-1 ❤  (%d left)", res.Hearts))))
		}
	}
	b.WriteString("\n\n")

	if s.question.Translation != "" {
		b.WriteString(center(width, theme.Body.Render(s.question.Translation)))
		b.WriteString("\n\n")
	}

	b.WriteString(center(width, theme.Hint.Render("Press any key to continue...")))
	return b.String()
}

func (s *SessionScreen) renderSummary(width int) string {
	sum := s.summary
	var b strings.Builder
	b.WriteString("\n")

	headline := "Lesson complete!"
	if sum.Perfect {
		headline = "Perfect lesson!"
	}
	b.WriteString(center(width, theme.Title.Render(headline)))
	b.WriteString("\n\n")
	b.WriteString(center(width,
		theme.XP.Render(fmt.Sprintf("+%d XP", sum.XPEarned))+"   "+
			theme.Gems.Render(fmt.Sprintf("+%d gems", sum.GemsEarned))))
	b.WriteString("\n")
	if sum.Mistakes > 0 {
		b.WriteString(center(width, theme.Subtitle.Render(fmt.Sprintf("%d mistakes", sum.Mistakes))))
		b.WriteString("\n")
	}
	if sum.StageDone {
		b.WriteString("\n")
		b.WriteString(center(width, theme.Streak.Render(fmt.Sprintf("Stage %d complete!", sum.Lesson.Stage))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(center(width, theme.Hint.Render("Press Enter to return to the map.")))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(width, theme.Body.Bold(true).Render("End lesson early?")))
	b.WriteString("\n")
	b.WriteString(center(width, theme.Subtitle.Render("XP earned so far is kept; the lesson will not count as completed.")))
	b.WriteString("\n\n")
	b.WriteString(center(width, theme.Correct.Render("[Y] Yes, end lesson")))
	b.WriteString("\n")
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Sky).Render("[N] No, keep going")))
	return b.String()
}

func renderOutOfHearts(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(width, theme.Incorrect.Render("Out of hearts!")))
	b.WriteString("\n\n")
	b.WriteString(center(width, theme.Body.Render("Refill your hearts in the shop to keep learning.")))
	b.WriteString("\n\n")
	b.WriteString(center(width, theme.Hint.Render("Press any key to return to the map.")))
	return b.String()
}

func renderError(width int, err error) string {
	return center(width, theme.Incorrect.Render(fmt.Sprintf("\n\n\n  Error: %v\n\n  Press any key to go back.", err)))
}

func center(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}
