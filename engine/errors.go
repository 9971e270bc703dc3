package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoParent is returned when a view is created without a container.
	ErrNoParent = errors.New("engine: no parent container")
	// ErrContainerInUse is returned when a container already hosts a live view.
	ErrContainerInUse = errors.New("engine: container already hosts a view")
	// ErrInvalidChange wraps change validation failures.
	ErrInvalidChange = errors.New("engine: invalid change")
	// ErrStaleTransaction is returned when a transaction was built from a
	// state other than the view's current one.
	ErrStaleTransaction = errors.New("engine: transaction does not start from the current state")
	// ErrDestroyed matches StaleDispatchError with errors.Is.
	ErrDestroyed = errors.New("engine: view destroyed")
)

// StaleDispatchError reports a dispatch against a destroyed view.
type StaleDispatchError struct {
	ContainerID string
}

func (e *StaleDispatchError) Error() string {
	return fmt.Sprintf("engine: dispatch to destroyed view (container %q)", e.ContainerID)
}

func (e *StaleDispatchError) Is(target error) bool { return target == ErrDestroyed }

// ConfigurationError reports a malformed extension list. Index is the
// position in the top-level list that holds the offending fragment.
type ConfigurationError struct {
	Index  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("engine: extension %d: %s", e.Index, e.Reason)
}
