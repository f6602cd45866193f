package main

import (
	"context"
	"sync"

	"github.com/muurk/userdeck/internal/controller"
	"github.com/muurk/userdeck/internal/users"
)

// tap wraps the gateway and remembers the last error, so one-shot
// commands can show the typed cause behind a controller's generic
// message.
type tap struct {
	controller.Gateway

	mu      sync.Mutex
	lastErr error
	// onDelete runs before the delete request is sent.
	onDelete func(id int)
}

func newTap(g controller.Gateway) *tap {
	return &tap{Gateway: g}
}

func (t *tap) record(err error) error {
	if err != nil {
		t.mu.Lock()
		t.lastErr = err
		t.mu.Unlock()
	}
	return err
}

// Err returns the last gateway error, or nil.
func (t *tap) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

func (t *tap) ListUsers(ctx context.Context) ([]users.User, error) {
	list, err := t.Gateway.ListUsers(ctx)
	return list, t.record(err)
}

func (t *tap) GetUser(ctx context.Context, id int) (*users.User, error) {
	u, err := t.Gateway.GetUser(ctx, id)
	return u, t.record(err)
}

func (t *tap) DeleteUser(ctx context.Context, id int) error {
	if t.onDelete != nil {
		t.onDelete(id)
	}
	return t.record(t.Gateway.DeleteUser(ctx, id))
}
