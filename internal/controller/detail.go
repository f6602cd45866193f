package controller

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/messages"
	"github.com/muurk/userdeck/internal/users"
)

// DetailController owns the state of the user detail screen for one id.
type DetailController struct {
	deps  Deps
	log   *zap.Logger
	life  *lifetime
	rawID string
	id    int

	mu       sync.Mutex
	state    State
	deleting bool
}

// ParseID converts a route identifier. Anything that is not a positive
// integer yields 0, which no record can carry.
func ParseID(raw string) int {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// NewDetailController creates an Idle controller for the route id raw.
func NewDetailController(parent context.Context, raw string, deps Deps) *DetailController {
	id := ParseID(raw)
	return &DetailController{
		deps:  deps.withDefaults(),
		log:   logging.Named("controller.detail").With(zap.Int("id", id)),
		life:  newLifetime(parent),
		rawID: raw,
		id:    id,
		state: Idle{},
	}
}

// ID is the parsed identifier.
func (c *DetailController) ID() int {
	return c.id
}

// State returns the current state.
func (c *DetailController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// User returns the loaded record.
func (c *DetailController) User() (users.User, bool) {
	return Value[users.User](c.State())
}

// Deleting reports whether a delete call is in flight.
func (c *DetailController) Deleting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting
}

// Load fetches the record: Loading, then Loaded or NotFound. A failed
// load also raises an error notice.
func (c *DetailController) Load(ctx context.Context) State {
	c.fetch(ctx)
	return c.State()
}

func (c *DetailController) fetch(ctx context.Context) {
	if !c.apply(Loading{}) {
		return
	}

	ctx, release := c.life.bind(ctx)
	defer release()

	next := State(NotFound{Message: c.deps.Messages.Text(messages.UserNotFound, nil)})
	defer func() {
		if c.apply(next) {
			if _, missing := next.(NotFound); missing {
				c.notify(LevelError, messages.NoticeError, messages.UserLoadFailed, nil)
			}
		}
	}()

	if c.id <= 0 {
		c.log.Debug("Invalid user id", zap.String("raw", c.rawID))
		return
	}

	u, err := c.deps.Gateway.GetUser(ctx, c.id)
	if err != nil {
		c.log.Warn("Failed to load user", zap.Error(err))
		return
	}
	if !u.Usable() {
		c.log.Warn("Response held no usable user")
		return
	}

	next = Loaded[users.User]{Value: *u}
}

// RequestDelete confirms and deletes the loaded user. On success the
// screen navigates back. While a delete is in flight further requests
// return DeleteBusy.
func (c *DetailController) RequestDelete(ctx context.Context) DeleteOutcome {
	if !c.life.alive() {
		return DeleteDropped
	}

	c.mu.Lock()
	busy := c.deleting
	u, loaded := Value[users.User](c.state)
	c.mu.Unlock()

	if busy {
		return DeleteBusy
	}
	if !loaded {
		c.log.Debug("Delete requested before the user was loaded")
		return DeleteCancelled
	}

	ctx, release := c.life.bind(ctx)
	defer release()

	prompt := deletePrompt(c.deps.Messages, messages.UserConfirmTitle, messages.UserConfirmBody,
		map[string]any{"Name": u.Label()})
	choice, err := c.deps.Confirmer.Confirm(ctx, prompt)
	if !c.life.alive() {
		return DeleteDropped
	}
	if err != nil || choice != ChoiceConfirm {
		if err != nil {
			c.log.Debug("Confirmation failed", zap.Error(err))
		}
		return DeleteCancelled
	}

	if !c.beginDelete() {
		return DeleteBusy
	}
	defer c.endDelete()

	if err := c.deps.Gateway.DeleteUser(ctx, c.id); err != nil {
		if !c.life.alive() {
			return DeleteDropped
		}
		c.log.Warn("Failed to delete user", zap.Error(err))
		c.notify(LevelError, messages.NoticeError, messages.UserDeleteFailed, nil)
		return DeleteFailed
	}

	if !c.life.alive() {
		return DeleteDropped
	}

	c.log.Info("User deleted")
	c.notify(LevelSuccess, messages.NoticeSuccess, messages.UserDeleted, nil)
	c.deps.Navigator.Back()
	return DeleteSucceeded
}

// RequestEdit navigates to the form screen for this user.
func (c *DetailController) RequestEdit() {
	if !c.life.alive() {
		return
	}
	c.deps.Navigator.Navigate(Route{Target: TargetUserForm, ID: strconv.Itoa(c.id)})
}

// Back leaves the screen.
func (c *DetailController) Back() {
	if !c.life.alive() {
		return
	}
	c.deps.Navigator.Back()
}

// Close tears the controller down: in-flight requests are cancelled and
// later completions leave the state untouched.
func (c *DetailController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.life.close() {
		c.log.Debug("Closed")
	}
}

// Closed reports whether Close has been called.
func (c *DetailController) Closed() bool {
	return !c.life.alive()
}

func (c *DetailController) beginDelete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleting {
		return false
	}
	c.deleting = true
	return true
}

func (c *DetailController) endDelete() {
	c.mu.Lock()
	c.deleting = false
	c.mu.Unlock()
}

func (c *DetailController) notify(level Level, titleID, messageID string, data map[string]any) {
	if !c.life.alive() {
		return
	}
	c.deps.Notifier.Notify(Notice{
		Level:   level,
		Title:   c.deps.Messages.Text(titleID, nil),
		Message: c.deps.Messages.Text(messageID, data),
	})
}

func (c *DetailController) apply(s State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.life.alive() {
		c.log.Debug("Dropped late update", zap.String("state", StateName(c.state)))
		return false
	}
	c.state = s
	return true
}
