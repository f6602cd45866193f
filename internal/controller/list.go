package controller

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/messages"
	"github.com/muurk/userdeck/internal/users"
)

// ListController owns the state of the user list screen.
type ListController struct {
	deps Deps
	log  *zap.Logger
	life *lifetime

	mu    sync.Mutex
	state State
}

// NewListController creates a controller in the Idle state. Cancelling
// parent has the same effect on requests as Close.
func NewListController(parent context.Context, deps Deps) *ListController {
	return &ListController{
		deps:  deps.withDefaults(),
		log:   logging.Named("controller.list"),
		life:  newLifetime(parent),
		state: Idle{},
	}
}

// State returns the current state. A Loaded value is a copy.
func (c *ListController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.state.(Loaded[[]users.User]); ok {
		return Loaded[[]users.User]{Value: append([]users.User(nil), l.Value...)}
	}
	return c.state
}

// Users returns the loaded records, or nil when not Loaded.
func (c *ListController) Users() []users.User {
	list, _ := Value[[]users.User](c.State())
	return list
}

// Load fetches the collection: Loading, then Loaded or Failed.
func (c *ListController) Load(ctx context.Context) State {
	c.fetch(ctx)
	return c.State()
}

// Refresh is Load on demand. Overlapping calls are allowed and the last
// response to arrive wins.
func (c *ListController) Refresh(ctx context.Context) State {
	return c.Load(ctx)
}

func (c *ListController) fetch(ctx context.Context) {
	if !c.apply(Loading{}) {
		return
	}

	ctx, release := c.life.bind(ctx)
	defer release()

	next := State(Failed{Message: c.deps.Messages.Text(messages.UsersLoadFailed, nil)})
	defer func() { c.apply(next) }()

	list, err := c.deps.Gateway.ListUsers(ctx)
	if err != nil {
		c.log.Warn("Failed to load users", zap.Error(err))
		return
	}

	c.log.Debug("Users loaded", zap.Int("count", len(list)))
	next = Loaded[[]users.User]{Value: list}
}

// RequestDelete asks for confirmation and then deletes the user with the
// given id. On success the record is removed from the loaded collection
// without a re-fetch.
func (c *ListController) RequestDelete(ctx context.Context, id int) DeleteOutcome {
	if !c.life.alive() {
		return DeleteDropped
	}

	ctx, release := c.life.bind(ctx)
	defer release()

	prompt := deletePrompt(c.deps.Messages, messages.UsersConfirmTitle, messages.UsersConfirmBody, nil)
	choice, err := c.deps.Confirmer.Confirm(ctx, prompt)
	if !c.life.alive() {
		return DeleteDropped
	}
	if err != nil || choice != ChoiceConfirm {
		if err != nil {
			c.log.Debug("Confirmation failed", zap.Int("id", id), zap.Error(err))
		}
		return DeleteCancelled
	}

	if err := c.deps.Gateway.DeleteUser(ctx, id); err != nil {
		if !c.life.alive() {
			return DeleteDropped
		}
		c.log.Warn("Failed to delete user", zap.Int("id", id), zap.Error(err))
		c.notify(LevelError, messages.NoticeError, messages.UsersDeleteFailed)
		return DeleteFailed
	}

	removed := c.update(func(s State) State {
		l, ok := s.(Loaded[[]users.User])
		if !ok {
			return s
		}
		return Loaded[[]users.User]{Value: users.Without(l.Value, id)}
	})
	if !removed {
		return DeleteDropped
	}

	c.log.Info("User deleted", zap.Int("id", id))
	c.notify(LevelSuccess, messages.NoticeSuccess, messages.UsersDeleted)
	return DeleteSucceeded
}

// Open navigates to the detail screen of id.
func (c *ListController) Open(id int) {
	c.navigate(Route{Target: TargetUser, ID: strconv.Itoa(id)})
}

// Edit navigates to the form screen for id.
func (c *ListController) Edit(id int) {
	c.navigate(Route{Target: TargetUserForm, ID: strconv.Itoa(id)})
}

// Create navigates to an empty form screen.
func (c *ListController) Create() {
	c.navigate(Route{Target: TargetUserForm})
}

// Close tears the controller down: in-flight requests are cancelled and
// later completions leave the state untouched.
func (c *ListController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.life.close() {
		c.log.Debug("Closed")
	}
}

// Closed reports whether Close has been called.
func (c *ListController) Closed() bool {
	return !c.life.alive()
}

func (c *ListController) navigate(r Route) {
	if !c.life.alive() {
		return
	}
	c.deps.Navigator.Navigate(r)
}

func (c *ListController) notify(level Level, titleID, messageID string) {
	if !c.life.alive() {
		return
	}
	c.deps.Notifier.Notify(Notice{
		Level:   level,
		Title:   c.deps.Messages.Text(titleID, nil),
		Message: c.deps.Messages.Text(messageID, nil),
	})
}

func (c *ListController) apply(s State) bool {
	return c.update(func(State) State { return s })
}

// update replaces the state unless the controller is closed.
func (c *ListController) update(fn func(State) State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.life.alive() {
		c.log.Debug("Dropped late update", zap.String("state", StateName(c.state)))
		return false
	}
	c.state = fn(c.state)
	return true
}
