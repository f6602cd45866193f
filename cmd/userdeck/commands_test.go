package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/userdeck/internal/config"
	"github.com/muurk/userdeck/internal/controller"
	"github.com/muurk/userdeck/internal/discovery"
	"github.com/muurk/userdeck/internal/fakeapi"
	"github.com/muurk/userdeck/internal/users"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	for _, key := range []string{"USERDECK_API_BASE_URL", "USERDECK_API_TIMEOUT", "USERDECK_LOCALE", "USERDECK_ALT_SCREEN"} {
		os.Unsetenv(key)
	}
	os.Exit(m.Run())
}

// execute runs the CLI against a fresh fake API and returns stdout.
func execute(t *testing.T, api string, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeSplit(t, api, args...)
	return out, err
}

// executeSplit is execute that also returns stderr.
func executeSplit(t *testing.T, api string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(bytes.NewReader(nil))

	args = append(args, "--api", api, "--config", filepath.Join(t.TempDir(), "config.yaml"))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func newAPI(t *testing.T) (*httptest.Server, *fakeapi.Store) {
	t.Helper()
	store := fakeapi.NewStore(fakeapi.DefaultSeed())
	server := httptest.NewServer(fakeapi.NewEngine(store, fakeapi.Options{}))
	t.Cleanup(server.Close)
	return server, store
}

func TestListJSON(t *testing.T) {
	server, _ := newAPI(t)

	out, err := execute(t, server.URL, "list", "--format", "json")
	require.NoError(t, err)

	var list []users.User
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, 5)
}

func TestShowNotFound(t *testing.T) {
	server, _ := newAPI(t)

	_, stderr, err := executeSplit(t, server.URL, "show", "42")

	assert.EqualError(t, err, "show 42 failed", "the box already explains the failure")
	assert.Contains(t, stderr, "User not found.")
}

func TestListFailureIsReportedOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, stderr, err := executeSplit(t, server.URL, "list", "--format", "json")

	assert.EqualError(t, err, "list failed")
	assert.Contains(t, stderr, "Failed to load users")
	assert.NotContains(t, err.Error(), "500")
}

func TestDeleteFailureIsReportedOnce(t *testing.T) {
	store := fakeapi.NewStore(fakeapi.DefaultSeed())
	server := httptest.NewServer(fakeapi.NewEngine(store, fakeapi.Options{FailDeletes: true}))
	defer server.Close()

	out, err := execute(t, server.URL, "delete", "1", "--yes")

	assert.EqualError(t, err, "delete 1 failed")
	assert.Contains(t, out, "Delete user failed")
	assert.Equal(t, 5, store.Len())
}

func TestDeleteWithYes(t *testing.T) {
	server, store := newAPI(t)

	out, err := execute(t, server.URL, "delete", "2", "--yes")

	require.NoError(t, err)
	assert.Contains(t, out, "Delete user complete")
	assert.Equal(t, 4, store.Len())
	_, found := store.Get(2)
	assert.False(t, found)
}

func TestDeleteDeclinedOnEOF(t *testing.T) {
	server, store := newAPI(t)
	assumeYes = false

	out, err := execute(t, server.URL, "delete", "3", "--yes=false")

	require.NoError(t, err, "declining is not an error")
	assert.Contains(t, out, "Delete user cancelled")
	assert.Equal(t, 5, store.Len())
}

func TestTapRecordsLastError(t *testing.T) {
	server, _ := newAPI(t)
	g := newTap(users.NewClient(server.URL, 0))

	var deleting []int
	g.onDelete = func(id int) { deleting = append(deleting, id) }

	_, err := g.GetUser(context.Background(), 99)
	assert.True(t, users.IsNotFound(g.Err()))
	assert.Equal(t, err, g.Err())

	require.NoError(t, g.DeleteUser(context.Background(), 1))
	assert.Equal(t, []int{1}, deleting)
	assert.Equal(t, err, g.Err(), "success keeps the last error")

	var _ controller.Gateway = g
}

func stubScan(t *testing.T, services []*discovery.Service, err error) {
	t.Helper()
	orig := scan
	scan = func(context.Context, time.Duration) ([]*discovery.Service, error) { return services, err }
	t.Cleanup(func() {
		scan = orig
		discoverSave = false
		discoverWait = discovery.DefaultScanTimeout
	})
}

func TestDiscoverSavesFirstResult(t *testing.T) {
	stubScan(t, []*discovery.Service{
		{Instance: "devbox", IP: "192.168.1.20", Port: 8089, Metadata: map[string]string{"version": "1.2.0"}},
	}, nil)

	path := filepath.Join(t.TempDir(), "config.yaml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"discover", "--save", "--config", path})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "http://192.168.1.20:8089 (1.2.0)")

	settings, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.20:8089", settings.API.BaseURL)
}

func TestDiscoverNothingFound(t *testing.T) {
	stubScan(t, nil, nil)
	server, _ := newAPI(t)

	out, err := execute(t, server.URL, "discover")

	require.NoError(t, err)
	assert.Contains(t, out, "No users API found")
}

func TestDiscoverFailure(t *testing.T) {
	stubScan(t, nil, errors.New("no multicast interface"))
	server, _ := newAPI(t)

	_, err := execute(t, server.URL, "discover")

	assert.EqualError(t, err, "discover failed")
}
