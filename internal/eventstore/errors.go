package eventstore

import (
	"errors"
	"fmt"
)

// FailureKind classifies event store failures.
type FailureKind int

const (
	// TransportFailure covers unreachable services and non-success statuses.
	TransportFailure FailureKind = iota
	// DecodeFailure covers malformed or incomplete response bodies.
	DecodeFailure
)

func (k FailureKind) String() string {
	switch k {
	case TransportFailure:
		return "transport"
	case DecodeFailure:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against an *Error.
var (
	ErrTransport = errors.New("event service transport failure")
	ErrDecode    = errors.New("event service decode failure")
)

// Error is returned by every Client operation that fails.
type Error struct {
	Err        error
	Op         string
	Kind       FailureKind
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s failure (status %d): %v", e.Op, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the ErrTransport and ErrDecode sentinels by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == TransportFailure
	case ErrDecode:
		return e.Kind == DecodeFailure
	}
	return false
}

func transportErr(op string, status int, err error) error {
	return &Error{Op: op, Kind: TransportFailure, StatusCode: status, Err: err}
}

func decodeErr(op string, err error) error {
	return &Error{Op: op, Kind: DecodeFailure, Err: err}
}
