package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/muurk/userdeck/internal/urls"
)

const mockUsersResponse = `[
  {"id":1,"name":"Leanne Graham","username":"Bret","email":"Sincere@april.biz",
   "address":{"street":"Kulas Light","suite":"Apt. 556","city":"Gwenborough","zipcode":"92998-3874","geo":{"lat":"-37.3159","lng":"81.1496"}},
   "phone":"1-770-736-8031 x56442","website":"hildegard.org",
   "company":{"name":"Romaguera-Crona","catchPhrase":"Multi-layered client-server neural-net","bs":"harness real-time e-markets"}},
  {"id":2,"name":"Ervin Howell","username":"Antonette","email":"Shanna@melissa.tv",
   "address":{"street":"Victor Plains","city":"Wisokyburgh","zipcode":"90566-7771"}}
]`

const mockUserResponse = `{"id":1,"name":"Leanne Graham","username":"Bret","email":"Sincere@april.biz","address":{"street":"Kulas Light","city":"Gwenborough","zipcode":"92998-3874"}}`

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8089/", 0)

	if client.BaseURL != "http://localhost:8089" {
		t.Errorf("BaseURL = %s, want http://localhost:8089", client.BaseURL)
	}
	if client.HTTPClient.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.HTTPClient.Timeout, DefaultTimeout)
	}
	if !strings.HasPrefix(client.UserAgent, "userdeck/") {
		t.Errorf("UserAgent = %s, want userdeck/ prefix", client.UserAgent)
	}
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client := NewClient("", 0)

	if client.BaseURL != urls.DefaultAPIBaseURL {
		t.Errorf("BaseURL = %s, want %s", client.BaseURL, urls.DefaultAPIBaseURL)
	}
}

func TestSetTimeout(t *testing.T) {
	client := NewClient("http://localhost", 0)
	client.SetTimeout(5 * time.Second)

	if client.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", client.HTTPClient.Timeout)
	}
}

func TestListUsers_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		if r.Header.Get(RequestIDHeader) == "" {
			t.Error("missing request id header")
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "userdeck/") {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(mockUsersResponse))
	}))
	defer server.Close()

	list, err := NewClient(server.URL, time.Second).ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != 1 || list[1].ID != 2 {
		t.Errorf("order not preserved: %d, %d", list[0].ID, list[1].ID)
	}
	if list[0].Company == nil || list[0].Company.CatchPhrase == "" {
		t.Error("company catchPhrase not decoded")
	}
	if list[0].Address.Geo == nil || list[0].Address.Geo.Lat != "-37.3159" {
		t.Error("geo not decoded")
	}
	if list[1].Company != nil {
		t.Error("absent company should decode as nil")
	}
}

func TestListUsers_EmptyArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	list, err := NewClient(server.URL, time.Second).ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("want empty non-nil slice, got %#v", list)
	}
}

func TestListUsers_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).ListUsers(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsNetwork(err) {
		t.Errorf("want network error, got %v", err)
	}

	e := err.(*Error)
	if e.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", e.StatusCode)
	}
	if !strings.Contains(e.Message, "boom") {
		t.Errorf("Message should carry body, got %q", e.Message)
	}
}

func TestListUsers_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).ListUsers(context.Background())

	var e *Error
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	e = err.(*Error)
	if e.Kind != KindDecode {
		t.Errorf("Kind = %v, want %v", e.Kind, KindDecode)
	}
}

func TestListUsers_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := NewClient(addr, time.Second).ListUsers(context.Background())
	if !IsNetwork(err) {
		t.Fatalf("want network error, got %v", err)
	}
	if err.(*Error).StatusCode != 0 {
		t.Error("transport failures carry no status code")
	}
}

func TestListUsers_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := NewClient(server.URL, 5*time.Second).ListUsers(ctx)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.(*Error).Subtype != NetworkCanceled {
		t.Errorf("Subtype = %v, want %v", err.(*Error).Subtype, NetworkCanceled)
	}
}

func TestGetUser_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/1" {
			t.Errorf("path = %s, want /users/1", r.URL.Path)
		}
		_, _ = w.Write([]byte(mockUserResponse))
	}))
	defer server.Close()

	u, err := NewClient(server.URL, time.Second).GetUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if u.Name != "Leanne Graham" {
		t.Errorf("Name = %s, want Leanne Graham", u.Name)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).GetUser(context.Background(), 42)
	if !IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("error should name the id, got %q", err.Error())
	}
}

func TestGetUser_EmptyObjectIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).GetUser(context.Background(), 7)
	if !IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestGetUser_InvalidIDSkipsRequest(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).GetUser(context.Background(), 0)
	if !IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("server was called %d times, want 0", hits)
	}
}

func TestDeleteUser_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Method = %s, want DELETE", r.Method)
		}
		if r.URL.Path != "/users/2" {
			t.Errorf("path = %s, want /users/2", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	if err := NewClient(server.URL, time.Second).DeleteUser(context.Background(), 2); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
}

func TestDeleteUser_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := NewClient(server.URL, time.Second).DeleteUser(context.Background(), 2); err != nil {
		t.Fatalf("204 should be success, got %v", err)
	}
}

func TestDeleteUser_Rejected(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		err := NewClient(server.URL, time.Second).DeleteUser(context.Background(), 2)
		server.Close()

		if !IsRejected(err) {
			t.Errorf("status %d: want rejected, got %v", status, err)
			continue
		}
		if err.(*Error).StatusCode != status {
			t.Errorf("StatusCode = %d, want %d", err.(*Error).StatusCode, status)
		}
	}
}
