package domain

import (
	"errors"
	"fmt"
)

// ErrAuthMissing means no user is signed in. Operations that need a user are no-ops.
var ErrAuthMissing = errors.New("no signed-in user")

// ErrValidation is returned when a trip fails its field checks.
var ErrValidation = errors.New("validation error")

// TransportError is a network or I/O fault while talking to a collaborator.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-success HTTP status from the completion API.
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("completion api returned status %d", e.Status)
}

// ParseError is a completion that is not the JSON shape a pipeline expects.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return "parse error: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// RemoteWriteError is a mutation rejected by the document store.
type RemoteWriteError struct {
	Op     string
	TripID TripID
	Err    error
}

func (e *RemoteWriteError) Error() string {
	if e.TripID != "" {
		return fmt.Sprintf("%s (trip %s): %v", e.Op, e.TripID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }

// RemoteWatchError is a failed or terminated document store subscription.
type RemoteWatchError struct {
	Target string
	Err    error
}

func (e *RemoteWatchError) Error() string {
	return fmt.Sprintf("watch %s: %v", e.Target, e.Err)
}

func (e *RemoteWatchError) Unwrap() error { return e.Err }
