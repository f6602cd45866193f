package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/userdeck/internal/controller"
)

// sender is the part of *tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// confirmRequestMsg asks the app to show a confirmation modal. The answer
// goes to reply, which is buffered so the app never blocks on it.
type confirmRequestMsg struct {
	prompt controller.Prompt
	reply  chan controller.Choice
}

type noticeMsg struct {
	notice controller.Notice
}

type navigateMsg struct {
	route controller.Route
}

type backMsg struct{}

// Bridge turns controller collaborator calls made from command goroutines
// into messages for the running program. It implements Confirmer, Notifier
// and Navigator.
//
// Program.Send blocks until the event loop takes the message, so the bridge
// must only be used from commands, never from Update.
type Bridge struct {
	mu      sync.RWMutex
	program sender
}

// NewBridge returns a detached bridge. Until Attach is called every prompt
// is cancelled and notices and navigation are dropped.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach routes messages to p. Passing nil detaches.
func (b *Bridge) Attach(p sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = p
}

func (b *Bridge) send(msg tea.Msg) bool {
	b.mu.RLock()
	p := b.program
	b.mu.RUnlock()
	if p == nil {
		return false
	}
	p.Send(msg)
	return true
}

// Confirm implements controller.Confirmer. It blocks until the modal is
// answered or ctx is done.
func (b *Bridge) Confirm(ctx context.Context, p controller.Prompt) (controller.Choice, error) {
	reply := make(chan controller.Choice, 1)
	if !b.send(confirmRequestMsg{prompt: p, reply: reply}) {
		return controller.ChoiceCancel, nil
	}

	select {
	case choice := <-reply:
		return choice, nil
	case <-ctx.Done():
		return controller.ChoiceCancel, ctx.Err()
	}
}

// Notify implements controller.Notifier
func (b *Bridge) Notify(n controller.Notice) {
	b.send(noticeMsg{notice: n})
}

// Navigate implements controller.Navigator
func (b *Bridge) Navigate(r controller.Route) {
	b.send(navigateMsg{route: r})
}

// Back implements controller.Navigator
func (b *Bridge) Back() {
	b.send(backMsg{})
}
