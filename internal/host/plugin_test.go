package host_test

import (
	"sync"

	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/user/pinggy-tunnel/internal/host"
	"github.com/user/pinggy-tunnel/internal/tunnel"
)

type fakeSupervisor struct {
	mu       sync.Mutex
	starts   []int
	stops    int
	closes   int
	startErr error
	closeErr error
	session  tunnel.Session
}

func (f *fakeSupervisor) Start(port int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts = append(f.starts, port)
	if f.startErr != nil {
		return f.startErr
	}
	f.session = tunnel.Session{State: tunnel.StateConnecting, Port: port}
	return nil
}

func (f *fakeSupervisor) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.session = tunnel.Session{State: tunnel.StateInactive}
}

func (f *fakeSupervisor) Close() error {
	f.mu.Lock()
	f.closes++
	f.mu.Unlock()
	f.Stop()
	return f.closeErr
}

func (f *fakeSupervisor) Status() tunnel.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

type pluginSuite struct {
	sup *fakeSupervisor
}

var _ = gc.Suite(&pluginSuite{})

func (s *pluginSuite) SetUpTest(c *gc.C) {
	s.sup = &fakeSupervisor{}
}

func (s *pluginSuite) TestAppStartedWithoutAutostart(c *gc.C) {
	p := host.NewPlugin(s.sup, 7860, false)
	p.AppStarted()
	c.Check(s.sup.starts, gc.HasLen, 0)
	c.Check(p.Status().State, gc.Equals, tunnel.StateInactive)
}

func (s *pluginSuite) TestAppStartedWithAutostart(c *gc.C) {
	p := host.NewPlugin(s.sup, 7860, true)
	p.AppStarted()
	c.Check(s.sup.starts, jc.DeepEquals, []int{7860})
	c.Check(p.Status().State, gc.Equals, tunnel.StateConnecting)
}

func (s *pluginSuite) TestStartTunnelRemembersPort(c *gc.C) {
	p := host.NewPlugin(s.sup, 7860, false)
	status := p.StartTunnel(8188)
	c.Check(status, jc.DeepEquals, tunnel.Session{State: tunnel.StateConnecting, Port: 8188})
	c.Check(p.Port(), gc.Equals, 8188)
}

func (s *pluginSuite) TestStartTunnelSwallowsErrors(c *gc.C) {
	p := host.NewPlugin(s.sup, 7860, false)

	s.sup.startErr = errors.Annotate(tunnel.ErrAlreadyActive, "port 7860")
	status := p.StartTunnel(7860)
	c.Check(status.State, gc.Equals, tunnel.StateInactive)

	s.sup.startErr = errors.Annotate(tunnel.ErrLaunchFailed, "no ssh")
	s.sup.session = tunnel.Session{State: tunnel.StateFailed, Error: "no ssh"}
	status = p.StartTunnel(7860)
	c.Check(status.State, gc.Equals, tunnel.StateFailed)
	c.Check(s.sup.starts, gc.HasLen, 2)
}

func (s *pluginSuite) TestRejectedStartKeepsPort(c *gc.C) {
	p := host.NewPlugin(s.sup, 7860, false)

	s.sup.startErr = errors.NotValidf("port 70000")
	p.StartTunnel(70000)
	c.Check(p.Port(), gc.Equals, 7860)

	s.sup.startErr = errors.Annotate(tunnel.ErrAlreadyActive, "port 7860")
	p.StartTunnel(9000)
	c.Check(p.Port(), gc.Equals, 7860)

	s.sup.startErr = errors.Annotate(tunnel.ErrLaunchFailed, "no ssh")
	p.StartTunnel(9001)
	c.Check(p.Port(), gc.Equals, 7860)
}

func (s *pluginSuite) TestStopTunnel(c *gc.C) {
	p := host.NewPlugin(s.sup, 7860, true)
	p.AppStarted()
	status := p.StopTunnel()
	c.Check(status, jc.DeepEquals, tunnel.Session{State: tunnel.StateInactive})
	c.Check(s.sup.stops, gc.Equals, 1)
}

func (s *pluginSuite) TestUnloadCloses(c *gc.C) {
	p := host.NewPlugin(s.sup, 7860, true)
	p.AppStarted()
	s.sup.closeErr = errors.New("watcher failed")
	p.Unload()
	c.Check(s.sup.closes, gc.Equals, 1)
	c.Check(p.Status().State, gc.Equals, tunnel.StateInactive)
}
