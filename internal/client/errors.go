package client

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches any failure to complete a call or read its response.
	ErrTransport = errors.New("remote store unreachable")
	// ErrRejected matches a completed call whose response does not confirm success.
	ErrRejected = errors.New("remote store did not confirm")
)

// TransportError wraps network failures and unreadable responses.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// RejectionError is returned when the store answered but did not confirm the operation.
type RejectionError struct {
	Op     string
	Status int
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: rejected with status %d: %s", e.Op, e.Status, e.Reason)
}

func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}
