package users

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// Kind represents the category of a gateway failure
type Kind int

const (
	// KindNetwork indicates a transport failure or a non-2xx status on a read
	KindNetwork Kind = iota
	// KindNotFound indicates the requested record does not exist
	KindNotFound
	// KindRejected indicates the remote refused a mutation (non-2xx on DELETE)
	KindRejected
	// KindDecode indicates a 2xx response whose body could not be decoded
	KindDecode
)

// NetworkSubtype provides more specific network error classification
type NetworkSubtype int

const (
	NetworkGeneral NetworkSubtype = iota
	NetworkTimeout
	NetworkConnectionRefused
	NetworkDNS
	NetworkHostUnreachable
	NetworkUnreachable
	NetworkCanceled
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "Network Error"
	case KindNotFound:
		return "Not Found"
	case KindRejected:
		return "Remote Rejection"
	case KindDecode:
		return "Decode Error"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Error is returned by every Client operation.
type Error struct {
	Kind       Kind           // Category of error
	Op         string         // Gateway operation ("list", "get", "delete")
	Message    string         // Human-readable error message
	StatusCode int            // HTTP status code (0 for transport failures)
	Subtype    NetworkSubtype // More specific network error type
	Err        error          // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s (caused by: %v)", e.Kind, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Op, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// classifyTransport inspects a transport error and fills in the subtype.
func classifyTransport(op string, err error) *Error {
	e := &Error{
		Kind:    KindNetwork,
		Op:      op,
		Message: "request failed",
		Err:     err,
		Subtype: NetworkGeneral,
	}

	switch {
	case errors.Is(err, context.Canceled):
		e.Subtype = NetworkCanceled
		e.Message = "request canceled"
		return e
	case os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded):
		e.Subtype = NetworkTimeout
		e.Message = "request timed out"
		return e
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		e.Subtype = NetworkDNS
		e.Message = fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name)
		return e
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			e.Subtype = NetworkConnectionRefused
			e.Message = "connection refused"
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			e.Subtype = NetworkHostUnreachable
			e.Message = "host unreachable"
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			e.Subtype = NetworkUnreachable
			e.Message = "network unreachable"
		}
		return e
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		e.Message = fmt.Sprintf("%s %s failed", urlErr.Op, urlErr.URL)
	}

	return e
}

func newStatusError(kind Kind, op string, status int, body string) *Error {
	msg := fmt.Sprintf("unexpected status code: %d", status)
	if body = strings.TrimSpace(body); body != "" && body != "{}" {
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		msg += ": " + body
	}
	return &Error{Kind: kind, Op: op, Message: msg, StatusCode: status}
}

func newNotFoundError(op string, id int, status int) *Error {
	return &Error{
		Kind:       KindNotFound,
		Op:         op,
		Message:    fmt.Sprintf("user %d not found", id),
		StatusCode: status,
	}
}

func newDecodeError(op string, err error) *Error {
	return &Error{Kind: KindDecode, Op: op, Message: "failed to decode response body", Err: err}
}

func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsNetwork checks if an error is a network error
func IsNetwork(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindNetwork
}

// IsNotFound checks if an error reports a missing record
func IsNotFound(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindNotFound
}

// IsRejected checks if an error is a remote rejection of a mutation
func IsRejected(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindRejected
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Kind {
	case KindNotFound:
		return "User not found"
	case KindRejected:
		return fmt.Sprintf("Server refused the request (HTTP %d)", e.StatusCode)
	case KindDecode:
		return "Server sent an unreadable response"
	}

	switch e.Subtype {
	case NetworkTimeout:
		return "Server not responding (timeout)"
	case NetworkConnectionRefused:
		return "Server refused connection"
	case NetworkDNS:
		return "Cannot resolve server hostname"
	case NetworkHostUnreachable, NetworkUnreachable:
		return "Server unreachable - check network connection"
	case NetworkCanceled:
		return "Request canceled"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("Server error (HTTP %d)", e.StatusCode)
	}
	return "Network error - check connection"
}

// TroubleshootingHints returns advice lines for CLI failure boxes
func TroubleshootingHints(err error) []string {
	var e *Error
	if !errors.As(err, &e) {
		return nil
	}

	switch e.Kind {
	case KindNotFound:
		return []string{
			"Check the user id (run 'userdeck list')",
			"The record may have been deleted already",
		}
	case KindRejected:
		return []string{
			"The server did not accept the deletion",
			"Retry later or check the server logs",
		}
	case KindDecode:
		return []string{
			"Verify --api points at a users API",
		}
	}

	switch e.Subtype {
	case NetworkTimeout:
		return []string{
			"The server did not respond in time",
			"Try a larger --timeout",
		}
	case NetworkDNS, NetworkConnectionRefused, NetworkHostUnreachable, NetworkUnreachable:
		return []string{
			"Verify the --api base URL",
			"Check your network connection",
			"For local development run 'userdeck-fakeapi serve'",
		}
	}
	return []string{"Check your network connection and retry"}
}
