package host

import (
	"fmt"

	"github.com/user/pinggy-tunnel/internal/tunnel"
)

// Display is the text a front end shows for a session.
type Display struct {
	State  tunnel.State
	Status string
	URL    string
}

// Describe renders s for display.
func Describe(s tunnel.Session) Display {
	switch s.State {
	case tunnel.StateConnecting:
		return Display{State: s.State, Status: "Status: Connecting", URL: "Establishing connection..."}
	case tunnel.StateActive:
		return Display{State: s.State, Status: "Status: Active", URL: s.PublicURL}
	case tunnel.StateFailed:
		return Display{State: s.State, Status: "Status: Failed", URL: fmt.Sprintf("Tunnel failed: %s", s.Error)}
	default:
		return Display{State: tunnel.StateInactive, Status: "Status: Inactive", URL: "No active tunnel"}
	}
}
