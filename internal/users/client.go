package users

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/urls"
	"github.com/muurk/userdeck/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries a per-request correlation id
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody caps how much of a failing response is read into the error
	maxErrorBody = 4 << 10
)

// Client is the users gateway: a thin HTTP client for a jsonplaceholder
// compatible /users resource. It holds no state between calls and is safe
// for concurrent use.
type Client struct {
	// BaseURL is the service root, e.g. "https://jsonplaceholder.typicode.com"
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// UserAgent is sent on every request
	UserAgent string
}

// NewClient creates a gateway for baseURL. An empty baseURL selects the
// public service and a non-positive timeout selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = urls.DefaultAPIBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  version.UserAgent(),
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// ListUsers fetches every user in the order the service returns them.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	body, status, err := c.do(ctx, "list", http.MethodGet, "/users")
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, newStatusError(KindNetwork, "list", status, string(body))
	}

	var list []User
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, newDecodeError("list", err)
	}
	if list == nil {
		list = []User{}
	}

	logging.Debug("Users listed", zap.Int("count", len(list)))
	return list, nil
}

// GetUser fetches a single user. A 404, or a 2xx whose body carries no
// usable id, yields a KindNotFound error. Ids below 1 never hit the wire.
func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	if id <= 0 {
		return nil, newNotFoundError("get", id, 0)
	}

	body, status, err := c.do(ctx, "get", http.MethodGet, userPath(id))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, newNotFoundError("get", id, status)
	}
	if !success(status) {
		return nil, newStatusError(KindNetwork, "get", status, string(body))
	}

	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, newDecodeError("get", err)
	}
	if !u.Usable() {
		return nil, newNotFoundError("get", id, status)
	}
	return &u, nil
}

// DeleteUser asks the service to remove a user. Any non-2xx status,
// including 404, is reported as KindRejected.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	body, status, err := c.do(ctx, "delete", http.MethodDelete, userPath(id))
	if err != nil {
		return err
	}
	if !success(status) {
		return newStatusError(KindRejected, "delete", status, string(body))
	}
	logging.Debug("User deleted", zap.Int("id", id))
	return nil
}

// do performs a single request and returns the body and status. Only
// transport failures produce an error here; status handling is per-op.
func (c *Client) do(ctx context.Context, op, method, path string) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	reqURL := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, 0, &Error{Kind: KindNetwork, Op: op, Message: "failed to create request", Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	logging.LogHTTPRequest(requestID, method, reqURL)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		e := classifyTransport(op, err)
		logging.Debug("HTTP transport failure",
			zap.String("request_id", requestID),
			zap.String("reason", e.Message),
		)
		return nil, 0, e
	}
	defer func() { _ = resp.Body.Close() }()

	var reader io.Reader = resp.Body
	if !success(resp.StatusCode) {
		reader = io.LimitReader(resp.Body, maxErrorBody)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, resp.StatusCode, classifyTransport(op, fmt.Errorf("failed to read response body: %w", err))
	}

	logging.LogHTTPResponse(requestID, resp.StatusCode, len(body))
	return body, resp.StatusCode, nil
}

func userPath(id int) string {
	return "/users/" + strconv.Itoa(id)
}

func success(status int) bool {
	return status >= 200 && status < 300
}
