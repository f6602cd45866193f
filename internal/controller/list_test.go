package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/userdeck/internal/users"
)

func TestListController_StartsIdle(t *testing.T) {
	f := newFixture()
	c := NewListController(context.Background(), f.deps())

	assert.Equal(t, Idle{}, c.State())
	assert.Nil(t, c.Users())
}

func TestListController_LoadPreservesServerOrder(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(3, 1, 2)
	c := NewListController(context.Background(), f.deps())

	s := c.Load(context.Background())

	list, ok := Value[[]users.User](s)
	require.True(t, ok, "want Loaded, got %T", s)
	assert.Equal(t, []int{3, 1, 2}, ids(list))
	assert.Equal(t, 1, f.gateway.ListCalls)
}

func TestListController_LoadFailure(t *testing.T) {
	f := newFixture()
	f.gateway.ListErr = errBoom
	c := NewListController(context.Background(), f.deps())

	s := c.Load(context.Background())

	require.IsType(t, Failed{}, s)
	assert.Equal(t, "Failed to load users", s.(Failed).Message)
	assert.Empty(t, f.notifier.all(), "list load failures are shown inline")
}

func TestListController_LoadingWhileInFlight(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(1)
	f.gateway.holdCalls()
	c := NewListController(context.Background(), f.deps())

	done := make(chan State)
	go func() { done <- c.Load(context.Background()) }()

	<-f.gateway.started
	assert.True(t, IsLoading(c.State()))

	close(f.gateway.hold)
	s := <-done
	assert.IsType(t, Loaded[[]users.User]{}, s)
	assert.False(t, IsLoading(c.State()))
}

func TestListController_RefreshRecoversFromFailure(t *testing.T) {
	f := newFixture()
	f.gateway.ListErr = errBoom
	c := NewListController(context.Background(), f.deps())

	require.IsType(t, Failed{}, c.Load(context.Background()))

	f.gateway.ListErr = nil
	f.gateway.ListRet = seedUsers(1, 2)
	s := c.Refresh(context.Background())

	list, ok := Value[[]users.User](s)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, ids(list))
	assert.Equal(t, 2, f.gateway.ListCalls)
}

func TestListController_StateReturnsCopy(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(1, 2)
	c := NewListController(context.Background(), f.deps())
	c.Load(context.Background())

	list := c.Users()
	list[0].Name = "changed"

	assert.NotEqual(t, "changed", c.Users()[0].Name)
}

func TestListController_DeleteRemovesLocally(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(1, 2, 3)
	c := NewListController(context.Background(), f.deps())
	c.Load(context.Background())

	outcome := c.RequestDelete(context.Background(), 2)

	assert.Equal(t, DeleteSucceeded, outcome)
	assert.Equal(t, []int{1, 3}, ids(c.Users()))
	assert.Equal(t, []int{2}, f.gateway.DeleteIDs)
	assert.Equal(t, 1, f.gateway.ListCalls, "no re-fetch after delete")

	notices := f.notifier.all()
	require.Len(t, notices, 1)
	assert.Equal(t, LevelSuccess, notices[0].Level)
	assert.Equal(t, "Success", notices[0].Title)
	assert.Equal(t, "User deleted successfully!", notices[0].Message)
}

func TestListController_DeletePrompt(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(1)
	c := NewListController(context.Background(), f.deps())
	c.Load(context.Background())

	c.RequestDelete(context.Background(), 1)

	require.Len(t, f.confirmer.Prompts, 1)
	p := f.confirmer.Prompts[0]
	assert.Equal(t, "Confirm deletion", p.Title)
	assert.Equal(t, "Are you sure you want to delete this user?", p.Message)
	require.Len(t, p.Actions, 2)
	assert.Equal(t, Action{Label: "Cancel", Choice: ChoiceCancel}, p.Actions[0])
	assert.Equal(t, Action{Label: "Delete", Choice: ChoiceConfirm, Destructive: true}, p.Actions[1])
}

func TestListController_DeleteCancelled(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(1, 2, 3)
	f.confirmer.Choice = ChoiceCancel
	c := NewListController(context.Background(), f.deps())
	c.Load(context.Background())

	outcome := c.RequestDelete(context.Background(), 2)

	assert.Equal(t, DeleteCancelled, outcome)
	assert.Equal(t, 0, f.gateway.deleteCount())
	assert.Equal(t, []int{1, 2, 3}, ids(c.Users()))
	assert.Empty(t, f.notifier.all())
}

func TestListController_ConfirmErrorCountsAsCancel(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(1)
	f.confirmer.Err = errBoom
	c := NewListController(context.Background(), f.deps())
	c.Load(context.Background())

	assert.Equal(t, DeleteCancelled, c.RequestDelete(context.Background(), 1))
	assert.Equal(t, 0, f.gateway.deleteCount())
}

func TestListController_DeleteFailureKeepsList(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(1, 2, 3)
	f.gateway.DeleteErr = errBoom
	c := NewListController(context.Background(), f.deps())
	c.Load(context.Background())

	outcome := c.RequestDelete(context.Background(), 2)

	assert.Equal(t, DeleteFailed, outcome)
	assert.Equal(t, []int{1, 2, 3}, ids(c.Users()))

	notices := f.notifier.all()
	require.Len(t, notices, 1)
	assert.Equal(t, LevelError, notices[0].Level)
	assert.Equal(t, "Failed to delete user", notices[0].Message)
}

func TestListController_DeleteUnknownIDLeavesList(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(1, 2)
	c := NewListController(context.Background(), f.deps())
	c.Load(context.Background())

	assert.Equal(t, DeleteSucceeded, c.RequestDelete(context.Background(), 9))
	assert.Equal(t, []int{1, 2}, ids(c.Users()))
}

func TestListController_DeleteBeforeLoadSkipsLocalRemoval(t *testing.T) {
	f := newFixture()
	c := NewListController(context.Background(), f.deps())

	assert.Equal(t, DeleteSucceeded, c.RequestDelete(context.Background(), 1))
	assert.Equal(t, Idle{}, c.State())
}

func TestListController_CloseDropsLateLoad(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(1)
	f.gateway.holdCalls()
	c := NewListController(context.Background(), f.deps())

	done := make(chan State)
	go func() { done <- c.Load(context.Background()) }()
	<-f.gateway.started

	c.Close()

	select {
	case s := <-done:
		assert.True(t, IsLoading(s), "state is frozen at teardown, got %T", s)
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not cancel the in-flight request")
	}
	assert.True(t, c.Closed())
	assert.Error(t, f.gateway.LastCtx.Err())
}

func TestListController_CloseDuringDeleteDropsCompletion(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(1, 2)
	c := NewListController(context.Background(), f.deps())
	c.Load(context.Background())
	f.gateway.holdCalls()

	done := make(chan DeleteOutcome)
	go func() { done <- c.RequestDelete(context.Background(), 2) }()
	<-f.gateway.started

	c.Close()

	assert.Equal(t, DeleteDropped, <-done)
	assert.Empty(t, f.notifier.all())
	assert.Equal(t, []int{1, 2}, ids(c.Users()))
}

func TestListController_ParentContextCancelsRequests(t *testing.T) {
	f := newFixture()
	f.gateway.holdCalls()
	parent, cancel := context.WithCancel(context.Background())
	c := NewListController(parent, f.deps())

	done := make(chan State)
	go func() { done <- c.Load(context.Background()) }()
	<-f.gateway.started

	cancel()

	s := <-done
	assert.IsType(t, Failed{}, s, "the controller is still open so the failure is shown")
}

func TestListController_AfterCloseIsInert(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(1)
	c := NewListController(context.Background(), f.deps())
	c.Close()
	c.Close()

	assert.Equal(t, Idle{}, c.Load(context.Background()))
	assert.Equal(t, 0, f.gateway.ListCalls)
	assert.Equal(t, DeleteDropped, c.RequestDelete(context.Background(), 1))
	assert.Equal(t, 0, f.confirmer.count())

	c.Open(1)
	assert.Empty(t, f.navigator.Routes)
}

func TestListController_Navigation(t *testing.T) {
	f := newFixture()
	c := NewListController(context.Background(), f.deps())

	c.Open(4)
	c.Edit(5)
	c.Create()

	assert.Equal(t, []Route{
		{Target: TargetUser, ID: "4"},
		{Target: TargetUserForm, ID: "5"},
		{Target: TargetUserForm},
	}, f.navigator.Routes)
}

func TestListController_NilCollaboratorsDecline(t *testing.T) {
	f := newFixture()
	f.gateway.ListRet = seedUsers(1)
	c := NewListController(context.Background(), Deps{Gateway: f.gateway})
	c.Load(context.Background())

	assert.Equal(t, DeleteCancelled, c.RequestDelete(context.Background(), 1))
	assert.Equal(t, 0, f.gateway.deleteCount())
}

func TestStateName(t *testing.T) {
	assert.Equal(t, "idle", StateName(Idle{}))
	assert.Equal(t, "loading", StateName(Loading{}))
	assert.Equal(t, "loaded", StateName(Loaded[int]{Value: 1}))
	assert.Equal(t, "failed", StateName(Failed{}))
	assert.Equal(t, "not_found", StateName(NotFound{}))
}
