package binding

import (
	"errors"
	"fmt"
)

// ErrNoContainer is the cause of a MountError raised without a container.
var ErrNoContainer = errors.New("binding: no container")

// MountError reports a failed mount. Nothing stays attached after it.
type MountError struct {
	Container string
	Err       error
}

func (e *MountError) Error() string {
	if e.Container == "" {
		return fmt.Sprintf("binding: mount: %v", e.Err)
	}
	return fmt.Sprintf("binding: mount %q: %v", e.Container, e.Err)
}

func (e *MountError) Unwrap() error { return e.Err }
