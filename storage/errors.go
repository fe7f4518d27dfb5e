package storage

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState = errors.New("invalid task state")
	ErrCorruptStore = errors.New("corrupt task store")
	ErrPersistence  = errors.New("failed to persist tasks")
	ErrIDsExhausted = errors.New("no task ids left")
	ErrLocked       = errors.New("task store is locked by another process")
)

// InvalidStateError reports a state string that is none of the known states
type InvalidStateError struct {
	Raw string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %q: must be one of 'not-started', 'in-progress', 'done'", ErrInvalidState, e.Raw)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}
