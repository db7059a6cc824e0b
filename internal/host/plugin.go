package host

import (
	"sync"

	"github.com/juju/errors"

	"github.com/user/pinggy-tunnel/internal/logger"
	"github.com/user/pinggy-tunnel/internal/tunnel"
)

// Supervisor is the part of *tunnel.Supervisor the hooks drive.
type Supervisor interface {
	Start(port int) error
	Stop()
	Close() error
	Status() tunnel.Session
}

// Plugin exposes the hooks an embedding application calls: AppStarted once
// the app is up, StartTunnel/StopTunnel from its controls and Unload on exit.
// Failures are logged and surface only through Status.
type Plugin struct {
	sup       Supervisor
	autostart bool

	mu   sync.Mutex
	port int
}

// NewPlugin wraps sup. port is the default local port; autostart makes
// AppStarted open the tunnel.
func NewPlugin(sup Supervisor, port int, autostart bool) *Plugin {
	return &Plugin{
		sup:       sup,
		port:      port,
		autostart: autostart,
	}
}

// AppStarted starts the tunnel when autostart is enabled.
func (p *Plugin) AppStarted() {
	if !p.autostart {
		return
	}
	logger.Info("Autostart enabled, starting tunnel")
	p.StartTunnel(p.Port())
}

// Port returns the port the next start will use.
func (p *Plugin) Port() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.port
}

// StartTunnel starts the tunnel on port. The port is remembered for later
// starts only when the tunnel actually started on it.
func (p *Plugin) StartTunnel(port int) tunnel.Session {
	err := p.sup.Start(port)
	switch {
	case err == nil:
		p.mu.Lock()
		p.port = port
		p.mu.Unlock()
	case errors.Is(err, tunnel.ErrAlreadyActive):
		// Logged by the supervisor.
	default:
		logger.Error("Failed to start tunnel: %v", err)
	}
	return p.sup.Status()
}

// StopTunnel stops the tunnel.
func (p *Plugin) StopTunnel() tunnel.Session {
	p.sup.Stop()
	return p.sup.Status()
}

// Status returns the current session.
func (p *Plugin) Status() tunnel.Session {
	return p.sup.Status()
}

// Unload stops the tunnel and waits for its watcher.
func (p *Plugin) Unload() {
	if err := p.sup.Close(); err != nil {
		logger.Error("Closing tunnel: %v", err)
	}
}
