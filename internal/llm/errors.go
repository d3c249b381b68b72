package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies an oracle failure into a stable category the caller
// can branch on when rendering a user-facing message.
type Kind string

const (
	KindConnection Kind = "connection"
	KindTimeout    Kind = "timeout"
	KindAPI        Kind = "api"
	KindCancelled  Kind = "cancelled"
	KindUnknown    Kind = "unknown"
)

// Error is the only error type returned by HTTPClient.
type Error struct {
	Kind       Kind
	StatusCode int    // set for KindAPI
	Body       string // set for KindAPI
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAPI:
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
	case KindCancelled:
		return "request cancelled"
	default:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Hint returns a short user-facing explanation of the failure.
func (e *Error) Hint() string {
	switch e.Kind {
	case KindConnection:
		return "Cannot connect to the model server. Make sure it is running and the server is started."
	case KindTimeout:
		return "Request timed out. The model might be taking too long to respond."
	case KindAPI:
		switch e.StatusCode {
		case 401, 403:
			return "Authentication failed. Please check your API settings."
		case 404:
			return "Model not found. Please check your model selection."
		}
		return fmt.Sprintf("The model server rejected the request (status %d).", e.StatusCode)
	case KindCancelled:
		return "Request cancelled."
	}
	return fmt.Sprintf("Unexpected error: %v", e.Err)
}

// classify maps a transport error from http.Client.Do to an *Error.
func classify(err error) *Error {
	switch {
	case errors.Is(err, context.Canceled):
		return &Error{Kind: KindCancelled, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &Error{Kind: KindConnection, Err: err}
	}
	return &Error{Kind: KindUnknown, Err: err}
}
