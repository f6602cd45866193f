package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/muurk/userdeck/internal/users"
)

var errBoom = errors.New("boom")

// fakeGateway records calls. When hold is set, every call signals on
// started and then waits for hold to be closed or ctx to be done.
type fakeGateway struct {
	mu sync.Mutex

	ListRet   []users.User
	ListErr   error
	GetRet    *users.User
	GetErr    error
	DeleteErr error

	hold    chan struct{}
	started chan string

	ListCalls int
	GetIDs    []int
	DeleteIDs []int
	LastCtx   context.Context
}

func (f *fakeGateway) holdCalls() {
	f.hold = make(chan struct{})
	f.started = make(chan string, 16)
}

func (f *fakeGateway) wait(ctx context.Context, op string) error {
	f.mu.Lock()
	f.LastCtx = ctx
	hold, started := f.hold, f.started
	f.mu.Unlock()

	if hold == nil {
		return nil
	}
	started <- op
	select {
	case <-hold:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeGateway) ListUsers(ctx context.Context) ([]users.User, error) {
	f.mu.Lock()
	f.ListCalls++
	f.mu.Unlock()

	if err := f.wait(ctx, "list"); err != nil {
		return nil, err
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]users.User(nil), f.ListRet...), nil
}

func (f *fakeGateway) GetUser(ctx context.Context, id int) (*users.User, error) {
	f.mu.Lock()
	f.GetIDs = append(f.GetIDs, id)
	f.mu.Unlock()

	if err := f.wait(ctx, "get"); err != nil {
		return nil, err
	}
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return f.GetRet, nil
}

func (f *fakeGateway) DeleteUser(ctx context.Context, id int) error {
	f.mu.Lock()
	f.DeleteIDs = append(f.DeleteIDs, id)
	f.mu.Unlock()

	if err := f.wait(ctx, "delete"); err != nil {
		return err
	}
	return f.DeleteErr
}

func (f *fakeGateway) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.DeleteIDs)
}

type fakeConfirmer struct {
	mu      sync.Mutex
	Choice  Choice
	Err     error
	Prompts []Prompt
}

func (f *fakeConfirmer) Confirm(_ context.Context, p Prompt) (Choice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, p)
	return f.Choice, f.Err
}

func (f *fakeConfirmer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Prompts)
}

type fakeNotifier struct {
	mu      sync.Mutex
	Notices []Notice
}

func (f *fakeNotifier) Notify(n Notice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Notices = append(f.Notices, n)
}

func (f *fakeNotifier) all() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notice(nil), f.Notices...)
}

type fakeNavigator struct {
	mu     sync.Mutex
	Routes []Route
	Backs  int
}

func (f *fakeNavigator) Navigate(r Route) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Routes = append(f.Routes, r)
}

func (f *fakeNavigator) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Backs++
}

func (f *fakeNavigator) backs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Backs
}

type fixture struct {
	gateway   *fakeGateway
	confirmer *fakeConfirmer
	notifier  *fakeNotifier
	navigator *fakeNavigator
}

func newFixture() *fixture {
	return &fixture{
		gateway:   &fakeGateway{},
		confirmer: &fakeConfirmer{Choice: ChoiceConfirm},
		notifier:  &fakeNotifier{},
		navigator: &fakeNavigator{},
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Gateway:   f.gateway,
		Confirmer: f.confirmer,
		Notifier:  f.notifier,
		Navigator: f.navigator,
	}
}

func seedUsers(ids ...int) []users.User {
	out := make([]users.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, users.User{ID: id, Name: "User " + string(rune('A'+id-1))})
	}
	return out
}

func ids(list []users.User) []int {
	out := make([]int, 0, len(list))
	for _, u := range list {
		out = append(out, u.ID)
	}
	return out
}
