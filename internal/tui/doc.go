// Package tui is the interactive front end: a Bubble Tea app with the
// user list and user detail screens.
//
// Screens live on a navigation stack owned by App. Each screen wraps a
// controller from package controller and renders its State; the
// controller does all gateway work inside Bubble Tea commands, so the
// event loop never blocks on the network.
//
// Controllers talk back to the app through a Bridge, which implements
// their Confirmer, Notifier and Navigator collaborators by sending
// messages to the running program:
//
//	confirmRequestMsg → modal with the prompt's actions
//	noticeMsg         → toast, cleared after ToastDuration
//	navigateMsg       → push (or unwind to) a screen
//	backMsg           → pop; popping the last screen quits
//
// A popped screen's controller is closed, so a late load or delete result
// changes nothing; the app also drops messages addressed to screens that
// are no longer on the stack.
//
// Key bindings:
//   - List: enter open, d delete, e edit, n new, r refresh, / filter, q quit
//   - Detail: ↑/↓ scroll, d delete, e edit, r reload, esc back
//   - Modal: ←/→ choose, enter confirm, esc cancel
//   - Everywhere: ? help, ctrl+c quit
package tui
