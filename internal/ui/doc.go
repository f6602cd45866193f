// Package ui renders the styled, run-once output of the userdeck CLI.
//
// Unlike the interactive screens in package tui, nothing here owns the
// terminal: components render to strings and a Printer writes them out.
//
//   - Header: command banner with ordered parameters
//   - Progress: step list with a progress bar
//   - Result: success, failure and warning boxes
//   - Runner: header → steps → result around one operation
//
// Prompter and Notifier adapt a line-oriented terminal to the controller's
// Confirmer and Notifier, so the delete command reuses the same flow the
// screens do:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:     "Delete user",
//	    Command:   "userdeck delete 2",
//	    StepNames: []string{"Fetch user", "Confirm", "Delete"},
//	})
//	err := runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) ([]ui.Field, error) {
//	    onStep(1, ui.StepRunning, "")
//	    // ...
//	})
//
// Logging stays silent unless USERDECK_LOG_LEVEL is set, so these boxes are
// the only output by default.
package ui
