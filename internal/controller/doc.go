// Package controller holds the non-visual logic of the two userdeck
// screens.
//
// A ListController drives the user list: it loads the collection, refreshes
// it on demand, deletes single records after confirmation and hands off
// navigation. A DetailController drives the detail screen for one id: it
// loads the record, deletes it (then navigates back) and hands off edit and
// back navigation.
//
// Both controllers hold a State:
//
//	Idle -> Loading -> Loaded[T]
//	                -> Failed    (list)
//	                -> NotFound  (detail)
//
// Controller methods block on the gateway and are meant to run off the UI
// loop (a Bubble Tea command, or a plain goroutine in the CLI). They are safe
// for concurrent use. Close cancels in-flight requests; completions that
// arrive afterwards are dropped without touching state, notifying or
// navigating.
//
// Collaborators (Gateway, Confirmer, Notifier, Navigator, Messages) are
// interfaces so the TUI, the CLI and the tests can supply their own.
package controller
