package host_test

import (
	"sync"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/user/pinggy-tunnel/internal/host"
	"github.com/user/pinggy-tunnel/internal/tunnel"
)

const longWait = 10 * time.Second

type refresherSuite struct {
	clock   *testclock.Clock
	mu      sync.Mutex
	session tunnel.Session
	shown   chan host.Display
}

var _ = gc.Suite(&refresherSuite{})

func (s *refresherSuite) SetUpTest(c *gc.C) {
	s.clock = testclock.NewClock(time.Time{})
	s.session = tunnel.Session{State: tunnel.StateInactive}
	s.shown = make(chan host.Display, 10)
}

func (s *refresherSuite) config() host.RefresherConfig {
	return host.RefresherConfig{
		Clock:    s.clock,
		Interval: 3 * time.Second,
		Status: func() tunnel.Session {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.session
		},
		Show: func(d host.Display) { s.shown <- d },
	}
}

func (s *refresherSuite) setSession(session tunnel.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

func (s *refresherSuite) nextDisplay(c *gc.C) host.Display {
	select {
	case d := <-s.shown:
		return d
	case <-time.After(longWait):
		c.Fatalf("no display update")
	}
	return host.Display{}
}

func (s *refresherSuite) TestValidate(c *gc.C) {
	cfg := s.config()
	cfg.Clock = nil
	_, err := host.NewRefresher(cfg)
	c.Check(err, jc.ErrorIs, errors.NotValid)

	cfg = s.config()
	cfg.Interval = 0
	_, err = host.NewRefresher(cfg)
	c.Check(err, gc.ErrorMatches, "interval 0s not valid")

	cfg = s.config()
	cfg.Show = nil
	_, err = host.NewRefresher(cfg)
	c.Check(err, gc.ErrorMatches, "missing Show not valid")
}

func (s *refresherSuite) TestRefreshes(c *gc.C) {
	r, err := host.NewRefresher(s.config())
	c.Assert(err, jc.ErrorIsNil)
	defer func() {
		r.Kill()
		c.Check(r.Wait(), jc.ErrorIsNil)
	}()

	c.Check(s.nextDisplay(c).Status, gc.Equals, "Status: Inactive")

	s.setSession(tunnel.Session{State: tunnel.StateActive, PublicURL: "http://x.a.free.pinggy.link"})
	c.Assert(s.clock.WaitAdvance(3*time.Second, longWait, 1), jc.ErrorIsNil)
	c.Check(s.nextDisplay(c), gc.Equals, host.Display{
		State:  tunnel.StateActive,
		Status: "Status: Active",
		URL:    "http://x.a.free.pinggy.link",
	})

	s.setSession(tunnel.Session{State: tunnel.StateInactive})
	c.Assert(s.clock.WaitAdvance(3*time.Second, longWait, 1), jc.ErrorIsNil)
	c.Check(s.nextDisplay(c).URL, gc.Equals, "No active tunnel")
}

func (s *refresherSuite) TestNoRefreshBeforeInterval(c *gc.C) {
	r, err := host.NewRefresher(s.config())
	c.Assert(err, jc.ErrorIsNil)
	defer func() {
		r.Kill()
		c.Check(r.Wait(), jc.ErrorIsNil)
	}()

	s.nextDisplay(c)
	c.Assert(s.clock.WaitAdvance(2*time.Second, longWait, 1), jc.ErrorIsNil)
	select {
	case d := <-s.shown:
		c.Fatalf("unexpected refresh %v", d)
	case <-time.After(50 * time.Millisecond):
	}
}
