package controller

import (
	"context"

	"github.com/muurk/userdeck/internal/messages"
)

// Deps are the collaborators of a controller. Only Gateway is required;
// the others fall back to no-op implementations and Messages to the base
// locale catalog.
type Deps struct {
	Gateway   Gateway
	Confirmer Confirmer
	Notifier  Notifier
	Navigator Navigator
	Messages  Messages
}

func (d Deps) withDefaults() Deps {
	if d.Confirmer == nil {
		d.Confirmer = declineAll{}
	}
	if d.Notifier == nil {
		d.Notifier = discardNotices{}
	}
	if d.Navigator == nil {
		d.Navigator = stayPut{}
	}
	if d.Messages == nil {
		d.Messages = messages.Default()
	}
	return d
}

type declineAll struct{}

func (declineAll) Confirm(context.Context, Prompt) (Choice, error) { return ChoiceCancel, nil }

type discardNotices struct{}

func (discardNotices) Notify(Notice) {}

type stayPut struct{}

func (stayPut) Navigate(Route) {}
func (stayPut) Back()          {}

func deletePrompt(msgs Messages, titleID, bodyID string, data map[string]any) Prompt {
	return Prompt{
		Title:   msgs.Text(titleID, nil),
		Message: msgs.Text(bodyID, data),
		Actions: []Action{
			{Label: msgs.Text(messages.ActionCancel, nil), Choice: ChoiceCancel},
			{Label: msgs.Text(messages.ActionDelete, nil), Choice: ChoiceConfirm, Destructive: true},
		},
	}
}
