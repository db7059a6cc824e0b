package tunnel

import "github.com/juju/errors"

const (
	// ErrAlreadyActive is returned by Start while a session is connecting or active.
	ErrAlreadyActive = errors.ConstError("tunnel already active")

	// ErrLaunchFailed is returned by Start when the client could not be spawned.
	ErrLaunchFailed = errors.ConstError("tunnel launch failed")

	// ErrTimeout is recorded when no URL shows up before the watch timeout.
	ErrTimeout = errors.ConstError("timed out waiting for tunnel URL")
)
