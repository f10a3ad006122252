package client

import (
	"errors"
	"fmt"
)

// Stage errors. Every failure returned by this package wraps exactly one of
// ErrAuthentication, ErrAuthorization, ErrRequest or ErrUpload, and
// additionally ErrUnavailable when the remote side could not be reached.
var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrAuthentication = errors.New("authentication failed")
	ErrAuthorization  = errors.New("authorization failed")
	ErrRequest        = errors.New("upload url request failed")
	ErrUpload         = errors.New("upload failed")
)

// StatusError reports a non-success HTTP answer. Kind is the stage error it
// unwraps to.
type StatusError struct {
	Kind       error
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v: %s: status %d", e.Kind, e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%v: %s: status %d: %s", e.Kind, e.Op, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}

func unavailable(kind error, op string, err error) error {
	return fmt.Errorf("%w: %s: %w: %w", kind, op, ErrUnavailable, err)
}
