package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/owllearn/internal/app"
	"github.com/abhisek/owllearn/internal/content"
	"github.com/abhisek/owllearn/internal/curriculum"
	"github.com/abhisek/owllearn/internal/lesson"
	"github.com/abhisek/owllearn/internal/ui/theme"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [stage] [substage]",
	Short: "Play a lesson (defaults to the next one)",
	Long:  "Play a lesson in the interactive client, on top of the skill map. With --plain, questions are read from standard input one answer per line instead.",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			a.Visit()
			out := cmd.OutOrStdout()

			next, ok := a.NextLesson()
			stage, sub := next.Stage, next.SubStage
			switch len(args) {
			case 2:
				var err error
				if stage, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("stage: %w", err)
				}
				if sub, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("substage: %w", err)
				}
			case 1:
				return errors.New("give both stage and substage, or neither")
			default:
				if !ok {
					fmt.Fprintln(out, courseComplete(a.Shape()))
					return nil
				}
			}

			p, err := a.StartLesson(ctx, stage, sub)
			switch {
			case errors.Is(err, lesson.ErrOutOfHearts):
				return fmt.Errorf("%w: run `owllearn shop buy refill-hearts`", err)
			case err != nil:
				return err
			}
			if plain, _ := cmd.Flags().GetBool("plain"); plain {
				return playLesson(ctx, p, cmd.InOrStdin(), out)
			}
			return a.Run(ctx, p)
		})
	},
}

func init() {
	playCmd.Flags().Bool("plain", false, "Read answers line by line from standard input")
}

// courseComplete is shown when every lesson of the tree is finished.
func courseComplete(shape curriculum.Shape) string {
	return theme.Correct.Render(fmt.Sprintf("🎉 Course complete! All %d lessons are finished.", shape.TotalLessons())) +
		"\n" + theme.Hint.Render("Replay any lesson with `owllearn play <stage> <substage>`.")
}

// playLesson runs p against line-oriented input until the lesson ends or
// input runs out.
func playLesson(ctx context.Context, p *lesson.Player, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Lesson %s", p.Lesson())))

	for {
		q, ok := p.Current()
		if !ok {
			break
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Subtitle.Render(fmt.Sprintf("Question %d/%d", p.Index()+1, p.Len())))
		printQuestion(out, q)
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			fmt.Fprintln(out)
			p.Abandon(ctx)
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			fmt.Fprintln(out, theme.Hint.Render("Lesson abandoned."))
			return nil
		}

		res, err := p.Submit(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if res.Correct {
			fmt.Fprintln(out, theme.Correct.Render(fmt.Sprintf("Correct! +%d XP", res.XPGained)))
		} else {
			msg := "Not quite. Answer: " + res.Expected
			if res.HeartLost {
				msg += fmt.Sprintf("  ❤ %d left", res.Hearts)
			}
			fmt.Fprintln(out, theme.Incorrect.Render(msg))
		}
		if q.Translation != "" {
			fmt.Fprintln(out, theme.Hint.Render(q.Translation))
		}
		if res.OutOfHearts {
			fmt.Fprintln(out, theme.Incorrect.Render("Out of hearts! Refill them in the shop: owllearn shop buy refill-hearts"))
			return nil
		}
	}

	sum, err := p.Finish(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	if sum.Perfect {
		fmt.Fprintln(out, theme.Correct.Render("Perfect lesson!"))
	}
	fmt.Fprintf(out, "%s  %s\n",
		theme.XP.Render(fmt.Sprintf("+%d XP", sum.XPEarned)),
		theme.Gems.Render(fmt.Sprintf("+%d gems", sum.GemsEarned)))
	if sum.StageDone {
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Stage %d complete!", sum.Lesson.Stage)))
	}
	fmt.Fprintf(out, "Next lesson: %s\n", sum.State.Frontier())
	return nil
}

func printQuestion(out io.Writer, q content.Question) {
	if q.Instruction != "" {
		fmt.Fprintln(out, theme.Body.Render(q.Instruction))
	}
	if q.Prompt != "" {
		fmt.Fprintln(out, theme.Title.Render(q.Prompt))
	}
	if q.Audio != "" && q.Prompt == "" {
		fmt.Fprintln(out, theme.Hint.Render("🔊 "+q.Audio))
	}

	switch {
	case q.Kind.MultipleChoice():
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d. %s\n", i+1, opt)
		}
	case q.Kind == content.KindWordOrder:
		fmt.Fprintf(out, "  [%s]\n", strings.Join(q.Tiles, "] ["))
	case q.Kind == content.KindPhoneticPractice:
		if q.Phonetic != "" {
			fmt.Fprintln(out, theme.Hint.Render(q.Phonetic))
		}
		fmt.Fprintf(out, "  say it aloud, then type %q\n", content.PhoneticCompleted)
	}
	if q.Hint != "" {
		fmt.Fprintln(out, theme.Hint.Render("hint: "+q.Hint))
	}
}
