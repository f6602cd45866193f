package controller

import (
	"context"

	"go.uber.org/atomic"
)

// lifetime ties a controller to its screen. Closing it cancels every
// request bound to it and marks the controller torn down, after which
// completions must be dropped.
type lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
	closed *atomic.Bool
}

func newLifetime(parent context.Context) *lifetime {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &lifetime{ctx: ctx, cancel: cancel, closed: atomic.NewBool(false)}
}

// bind derives a context that is done when either ctx or the lifetime is.
func (l *lifetime) bind(ctx context.Context) (context.Context, func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(l.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (l *lifetime) alive() bool {
	return !l.closed.Load()
}

// close reports whether this call performed the teardown.
func (l *lifetime) close() bool {
	if !l.closed.CompareAndSwap(false, true) {
		return false
	}
	l.cancel()
	return true
}
