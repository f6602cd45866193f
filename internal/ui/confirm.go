package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/userdeck/internal/controller"
)

// ErrCancelled is returned by operations the user declined.
var ErrCancelled = errors.New("cancelled by user")

// Prompter asks confirmation questions on a line-oriented terminal. It
// satisfies controller.Confirmer.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// AssumeYes answers every prompt with the first confirming action.
	AssumeYes bool
}

// NewPrompter reads answers from in and writes prompts to out. Nil means
// os.Stdin / os.Stdout.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm renders p as a warning box and reads a y/N answer. Typing the
// label of a confirming action also counts as yes. EOF and anything else
// is a cancel.
func (c *Prompter) Confirm(ctx context.Context, p controller.Prompt) (controller.Choice, error) {
	_, _ = fmt.Fprintln(c.out, renderPrompt(p, GetTerminalWidth()))
	_, _ = fmt.Fprintln(c.out)

	if c.AssumeYes {
		return controller.ChoiceConfirm, nil
	}

	promptStyle := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	_, _ = fmt.Fprint(c.out, promptStyle.Render(fmt.Sprintf("%s [y/N]: ", confirmLabel(p))))

	answer := make(chan string, 1)
	failed := make(chan error, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			failed <- err
			return
		}
		answer <- line
	}()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(c.out)
		return controller.ChoiceCancel, ctx.Err()
	case err := <-failed:
		_, _ = fmt.Fprintln(c.out)
		if errors.Is(err, io.EOF) {
			return controller.ChoiceCancel, nil
		}
		return controller.ChoiceCancel, err
	case line := <-answer:
		if choice := parseAnswer(line, p); choice == controller.ChoiceConfirm {
			return choice, nil
		}
		_, _ = fmt.Fprintln(c.out, lipgloss.NewStyle().Foreground(MutedColor).Render("  Operation cancelled."))
		return controller.ChoiceCancel, nil
	}
}

func parseAnswer(line string, p controller.Prompt) controller.Choice {
	answer := strings.ToLower(strings.TrimSpace(line))
	switch answer {
	case "y", "yes":
		return controller.ChoiceConfirm
	case "":
		return controller.ChoiceCancel
	}
	for _, a := range p.Actions {
		if a.Choice == controller.ChoiceConfirm && strings.ToLower(a.Label) == answer {
			return controller.ChoiceConfirm
		}
	}
	return controller.ChoiceCancel
}

func confirmLabel(p controller.Prompt) string {
	for _, a := range p.Actions {
		if a.Choice == controller.ChoiceConfirm {
			return a.Label
		}
	}
	return "Continue"
}

func renderPrompt(p controller.Prompt, width int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := []string{
		"",
		WarningTitleStyle.Render(fmt.Sprintf("   %s  %s", WarningMarker, p.Title)),
		"",
		lipgloss.NewStyle().Foreground(TextColor).Width(width - 12).PaddingLeft(3).Render(p.Message),
		"",
	}

	return WarningBoxStyle(width).Padding(0, 2).Render(strings.Join(lines, "\n"))
}
