package session

import "fmt"

// InitialLoadError is returned by Start when the very first service listing
// fails. It is the only directory failure that aborts a session.
type InitialLoadError struct {
	Err error
}

func (e *InitialLoadError) Error() string {
	return fmt.Sprintf("initial service load failed: %v", e.Err)
}

func (e *InitialLoadError) Unwrap() error { return e.Err }
