// Package tunnel supervises the external ssh client that opens the public
// tunnel and scrapes its output for the public URL.
package tunnel

import "time"

// State represents the tunnel session state.
type State string

const (
	StateInactive   State = "inactive"
	StateConnecting State = "connecting"
	StateActive     State = "active"
	StateFailed     State = "failed"
)

func (s State) String() string {
	return string(s)
}

// Live reports whether a session in this state owns a running attempt.
func (s State) Live() bool {
	return s == StateConnecting || s == StateActive
}

// Session is a point-in-time view of the tunnel. PublicURL is set only
// while State is StateActive.
type Session struct {
	Port        int
	State       State
	PublicURL   string
	PID         int
	StartedAt   time.Time
	ConnectedAt time.Time
	Error       string
}

// StatusListener is a callback invoked when the session changes.
type StatusListener func(status Session)
