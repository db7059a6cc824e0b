package host_test

import (
	gc "gopkg.in/check.v1"

	"github.com/user/pinggy-tunnel/internal/host"
	"github.com/user/pinggy-tunnel/internal/tunnel"
)

type displaySuite struct{}

var _ = gc.Suite(&displaySuite{})

func (s *displaySuite) TestDescribe(c *gc.C) {
	tests := []struct {
		session  tunnel.Session
		expected host.Display
	}{{
		session:  tunnel.Session{State: tunnel.StateInactive},
		expected: host.Display{State: tunnel.StateInactive, Status: "Status: Inactive", URL: "No active tunnel"},
	}, {
		session:  tunnel.Session{State: tunnel.StateConnecting, Port: 7860},
		expected: host.Display{State: tunnel.StateConnecting, Status: "Status: Connecting", URL: "Establishing connection..."},
	}, {
		session:  tunnel.Session{State: tunnel.StateActive, PublicURL: "http://a.pinggy.link"},
		expected: host.Display{State: tunnel.StateActive, Status: "Status: Active", URL: "http://a.pinggy.link"},
	}, {
		session:  tunnel.Session{State: tunnel.StateFailed, Error: "timed out waiting for tunnel URL"},
		expected: host.Display{State: tunnel.StateFailed, Status: "Status: Failed", URL: "Tunnel failed: timed out waiting for tunnel URL"},
	}, {
		session:  tunnel.Session{},
		expected: host.Display{State: tunnel.StateInactive, Status: "Status: Inactive", URL: "No active tunnel"},
	}}
	for i, test := range tests {
		c.Logf("test %d: %s", i, test.session.State)
		c.Check(host.Describe(test.session), gc.Equals, test.expected)
	}
}
