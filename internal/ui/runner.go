package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// RunnerConfig holds configuration for a multi-step command
type RunnerConfig struct {
	Title           string   // Command title (e.g., "Delete user")
	Command         string   // Full command (e.g., "userdeck delete 2")
	Params          []Field  // Parameters to display in header
	StepNames       []string // Names for each step
	Troubleshooting func(err error) []string
	Output          io.Writer // default: os.Stdout
}

// Operation is the work a Runner wraps. It reports progress through onStep
// and may return extra detail rows for the success box.
type Operation func(ctx context.Context, onStep StepCallback) ([]Field, error)

// Runner prints header, step progress and a final result box around an
// operation.
type Runner struct {
	config   RunnerConfig
	header   *Header
	progress *Progress
	out      io.Writer
	width    int
}

// NewRunner creates a runner for a command
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	width := GetTerminalWidth()

	return &Runner{
		config:   config,
		header:   NewHeader(config.Title, config.Command, config.Params...).SetWidth(width),
		progress: NewProgress(config.StepNames...).SetWidth(width),
		out:      config.Output,
		width:    width,
	}
}

// Progress exposes the step tracker.
func (r *Runner) Progress() *Progress {
	return r.progress
}

// Run executes op with UI updates. Cancellation is reported as a warning,
// not a failure.
func (r *Runner) Run(ctx context.Context, op Operation) error {
	start := time.Now()

	_, _ = fmt.Fprintln(r.out, r.header.Render())
	_, _ = fmt.Fprintln(r.out)

	details, err := op(ctx, r.onStep)
	details = append(details, Field{Key: "Duration", Value: time.Since(start).Round(time.Millisecond).String()})

	_, _ = fmt.Fprintln(r.out)
	var result *Result
	switch {
	case err == nil:
		result = NewSuccessResult(r.config.Title+" complete", details...)
	case errors.Is(err, ErrCancelled):
		result = NewWarningResult(r.config.Title+" cancelled", details...)
	default:
		var tips []string
		if r.config.Troubleshooting != nil {
			tips = r.config.Troubleshooting(err)
		}
		result = NewFailureResult(r.config.Title+" failed", err, tips)
	}
	_, _ = fmt.Fprintln(r.out, result.SetWidth(r.width).Render())

	if errors.Is(err, ErrCancelled) {
		return nil
	}
	return err
}

func (r *Runner) onStep(number int, status StepStatus, message string) {
	r.progress.UpdateStep(number, status, message)
	if number < 1 || number > r.progress.Total() {
		return
	}
	line := r.progress.renderStepLine(r.progress.Steps[number-1])
	if status == StepRunning {
		// Overwritten by the final status line.
		_, _ = fmt.Fprint(r.out, line+"\r")
		return
	}
	_, _ = fmt.Fprintln(r.out, line)
}
