package controller

import (
	"context"

	"github.com/muurk/userdeck/internal/users"
)

// Gateway is the remote users resource. *users.Client satisfies it.
type Gateway interface {
	ListUsers(ctx context.Context) ([]users.User, error)
	GetUser(ctx context.Context, id int) (*users.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// Choice is the user's answer to a confirmation prompt.
type Choice int

const (
	ChoiceCancel Choice = iota
	ChoiceConfirm
)

// Action is one button of a confirmation prompt.
type Action struct {
	Label       string
	Choice      Choice
	Destructive bool
}

// Prompt is a modal confirmation request.
type Prompt struct {
	Title   string
	Message string
	Actions []Action
}

// Confirmer asks the user to confirm a destructive action. It blocks until
// the user answers or ctx is done. An error counts as ChoiceCancel.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (Choice, error)
}

// Level classifies a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a short message shown to the user after an operation.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// Notifier shows notices. Notify must not block.
type Notifier interface {
	Notify(n Notice)
}

// Target names a screen.
type Target string

const (
	TargetUsers    Target = "users"
	TargetUser     Target = "user"
	TargetUserForm Target = "user-form"
)

// Route is a navigation destination with at most one identifier.
type Route struct {
	Target Target
	ID     string
}

// Navigator moves between screens. Both methods must not block.
type Navigator interface {
	Navigate(r Route)
	Back()
}

// Messages resolves user-facing text. *messages.Catalog satisfies it.
type Messages interface {
	Text(id string, data map[string]any) string
}

// DeleteOutcome is the result of a delete request.
type DeleteOutcome int

const (
	// DeleteCancelled means the user declined; no request was made.
	DeleteCancelled DeleteOutcome = iota
	// DeleteSucceeded means the remote accepted the deletion.
	DeleteSucceeded
	// DeleteFailed means the remote call failed; state is unchanged.
	DeleteFailed
	// DeleteBusy means a delete from the same screen is still in flight.
	DeleteBusy
	// DeleteDropped means the controller was closed before completion.
	DeleteDropped
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteCancelled:
		return "cancelled"
	case DeleteSucceeded:
		return "succeeded"
	case DeleteFailed:
		return "failed"
	case DeleteBusy:
		return "busy"
	case DeleteDropped:
		return "dropped"
	default:
		return "unknown"
	}
}
