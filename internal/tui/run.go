package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/userdeck/internal/controller"
	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/messages"
)

// Options configure the interactive app.
type Options struct {
	Gateway    controller.Gateway
	Messages   *messages.Catalog
	APIBaseURL string // shown in the header
	AltScreen  bool

	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

// Run starts the app and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	if opts.Gateway == nil {
		return errors.New("tui: no gateway configured")
	}

	bridge := NewBridge()
	app := NewApp(ctx, opts, bridge)
	defer app.Close()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	program := tea.NewProgram(app, programOpts...)
	bridge.Attach(program)
	defer bridge.Attach(nil)

	logging.Debug("Starting TUI")
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
