package tunnel

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"github.com/user/pinggy-tunnel/internal/config"
	"github.com/user/pinggy-tunnel/internal/logger"
	"github.com/user/pinggy-tunnel/internal/procutil"
)

// SupervisorConfig holds the dependencies of a Supervisor.
type SupervisorConfig struct {
	Config   *config.Config
	Clock    clock.Clock
	Launcher Launcher

	// OutputPath is where the client output goes. Defaults to the cache
	// output file of Config.
	OutputPath string

	// ExitGrace is how long Stop waits for a terminated client to exit
	// before removing the output file. Zero uses procutil.ExitGrace;
	// negative disables the wait.
	ExitGrace time.Duration
}

// Validate ensures that the config values are valid.
func (c *SupervisorConfig) Validate() error {
	if c.Config == nil {
		return errors.NotValidf("missing Config")
	}
	if c.Clock == nil {
		return errors.NotValidf("missing Clock")
	}
	if c.Launcher == nil {
		return errors.NotValidf("missing Launcher")
	}
	return errors.Trace(c.Config.Validate())
}

// Supervisor owns the single tunnel session: it launches the client, watches
// its output for the public URL and tears everything down on Stop.
// It is safe for concurrent use.
type Supervisor struct {
	mu sync.RWMutex

	cfg        config.Config
	clock      clock.Clock
	launcher   Launcher
	outputPath string
	exitGrace  time.Duration

	session Session
	// attempt identifies the current start; watchers and reapers of an
	// older attempt must not touch the session.
	attempt        uint64
	process        Process
	exited         chan struct{} // closed when process has been reaped
	watcher        *watcher
	statusListener StatusListener
}

// NewSupervisor creates an inactive Supervisor.
func NewSupervisor(cfg SupervisorConfig) (*Supervisor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = cfg.Config.Cache.OutputPath()
	}
	exitGrace := cfg.ExitGrace
	if exitGrace == 0 {
		exitGrace = procutil.ExitGrace
	}
	return &Supervisor{
		cfg:        *cfg.Config,
		clock:      cfg.Clock,
		launcher:   cfg.Launcher,
		outputPath: outputPath,
		exitGrace:  exitGrace,
		session:    Session{State: StateInactive},
	}, nil
}

// SetStatusListener sets a callback that will be called on every status change.
func (s *Supervisor) SetStatusListener(listener StatusListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusListener = listener
}

// OutputPath returns the file receiving the client output.
func (s *Supervisor) OutputPath() string {
	return s.outputPath
}

// Status returns a consistent snapshot of the session.
func (s *Supervisor) Status() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Start launches the client for port and begins watching its output.
// It returns immediately. Starting while a session is connecting or active
// changes nothing and returns ErrAlreadyActive. A spawn failure leaves the
// session failed and returns ErrLaunchFailed.
func (s *Supervisor) Start(port int) error {
	if err := config.ValidatePort(port); err != nil {
		return errors.Trace(err)
	}

	s.mu.Lock()
	if s.session.State.Live() {
		current := s.session.Port
		s.mu.Unlock()
		logger.Warning("Tunnel is already active on port %d", current)
		return errors.Annotatef(ErrAlreadyActive, "port %d", current)
	}

	// A failed attempt may leave its client running.
	s.releaseLocked()

	s.attempt++
	attempt := s.attempt
	s.session = Session{
		Port:      port,
		State:     StateConnecting,
		StartedAt: s.clock.Now(),
	}

	logger.Info("Starting SSH tunnel for port %d", port)
	proc, err := s.launchLocked(port)
	if err != nil {
		s.failLocked(err)
		s.mu.Unlock()
		logger.Error("Tunnel error: %v", err)
		s.broadcastStatus()
		return errors.Annotatef(ErrLaunchFailed, "%v", err)
	}

	exited := make(chan struct{})
	s.process = proc
	s.exited = exited
	s.session.PID = proc.Pid()
	s.watcher = &watcher{
		clock:    s.clock,
		path:     s.outputPath,
		marker:   Marker{Prefix: s.cfg.Marker.Prefix, Suffix: s.cfg.Marker.Suffix},
		interval: s.cfg.Watch.PollIntervalDuration(),
		timeout:  s.cfg.Watch.TimeoutDuration(),
		attempt:  attempt,
		found:    s.markActive,
		expired:  s.markTimedOut,
	}
	s.watcher.start()
	s.mu.Unlock()

	logger.SafeGo("tunnel-reaper", func() {
		s.reap(attempt, proc, exited)
	})
	s.broadcastStatus()
	return nil
}

// launchLocked truncates the output file and spawns the client writing to it.
func (s *Supervisor) launchLocked(port int) (Process, error) {
	if err := os.MkdirAll(filepath.Dir(s.outputPath), 0755); err != nil {
		return nil, errors.Annotate(err, "creating cache directory")
	}
	output, err := os.Create(s.outputPath)
	if err != nil {
		return nil, errors.Annotate(err, "creating output file")
	}
	// The child holds its own descriptor once started.
	defer output.Close()

	cmd := BuildCommand(s.cfg.Tunnel, port)
	logger.Debug("Running %s", cmd)
	proc, err := s.launcher.Launch(cmd, output)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return proc, nil
}

// Stop terminates the client, resets the session to inactive and removes
// the output file. Termination is best-effort.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	hadProcess := s.process != nil
	exited := s.releaseLocked()
	s.attempt++
	attempt := s.attempt
	s.session = Session{State: StateInactive}
	if s.exitGrace <= 0 {
		s.removeOutputLocked()
	}
	s.mu.Unlock()

	if s.exitGrace > 0 {
		// The client may still hold the output file open.
		s.awaitExit(exited)
		s.mu.Lock()
		if attempt == s.attempt {
			s.removeOutputLocked()
		}
		s.mu.Unlock()
	}

	if hadProcess {
		logger.Info("Tunnel stopped")
	}
	s.broadcastStatus()
}

// Close stops the tunnel and waits for the watcher to exit.
func (s *Supervisor) Close() error {
	s.mu.RLock()
	w := s.watcher
	s.mu.RUnlock()

	s.Stop()
	if w != nil {
		return errors.Trace(w.Wait())
	}
	return nil
}

// releaseLocked kills the watcher and terminates the client, ignoring
// termination errors. It returns the channel closed once the terminated
// client is reaped, or nil when there was none.
func (s *Supervisor) releaseLocked() chan struct{} {
	if s.watcher != nil {
		s.watcher.Kill()
		s.watcher = nil
	}
	exited := s.exited
	if s.process != nil {
		if err := s.process.Terminate(); err != nil {
			logger.Debug("Terminating tunnel process: %v", err)
		}
		s.process = nil
	}
	s.exited = nil
	return exited
}

// awaitExit waits up to the exit grace for exited to close.
func (s *Supervisor) awaitExit(exited chan struct{}) {
	if exited == nil {
		return
	}
	select {
	case <-exited:
		return
	default:
	}
	select {
	case <-exited:
	case <-s.clock.After(s.exitGrace):
		logger.Debug("Tunnel process still running after %v", s.exitGrace)
	}
}

func (s *Supervisor) removeOutputLocked() {
	if err := os.Remove(s.outputPath); err != nil && !os.IsNotExist(err) {
		logger.Warning("Removing tunnel output: %v", err)
	}
}

// failLocked marks the attempt failed. A client that is still running keeps
// its PID until it is reaped or terminated.
func (s *Supervisor) failLocked(err error) {
	s.session.State = StateFailed
	s.session.PublicURL = ""
	s.session.Error = err.Error()
}

// markActive records the URL found by the watcher of attempt.
func (s *Supervisor) markActive(attempt uint64, url string) {
	s.mu.Lock()
	if attempt != s.attempt || s.session.State != StateConnecting {
		s.mu.Unlock()
		return
	}
	s.session.State = StateActive
	s.session.PublicURL = url
	s.session.ConnectedAt = s.clock.Now()
	s.mu.Unlock()

	logger.Info("Tunnel established: %s", url)
	s.broadcastStatus()
}

// markTimedOut fails attempt if it is still connecting.
func (s *Supervisor) markTimedOut(attempt uint64) {
	s.mu.Lock()
	if attempt != s.attempt || s.session.State != StateConnecting {
		s.mu.Unlock()
		return
	}
	s.failLocked(ErrTimeout)
	s.mu.Unlock()

	logger.Warning("Timeout reached, URL not found")
	s.broadcastStatus()
}

// reap waits for the client of attempt to exit and releases its handle.
// An early exit is not treated as a failure; the watcher times out instead.
func (s *Supervisor) reap(attempt uint64, proc Process, exited chan struct{}) {
	err := proc.Wait()
	close(exited)

	s.mu.Lock()
	current := attempt == s.attempt && s.process != nil
	if current {
		s.process = nil
		s.exited = nil
		s.session.PID = 0
	}
	s.mu.Unlock()

	if !current {
		return
	}
	if err != nil {
		logger.Warning("Tunnel process exited: %v", err)
	} else {
		logger.Info("Tunnel process exited")
	}
	s.broadcastStatus()
}

// broadcastStatus sends the current status to the listener.
func (s *Supervisor) broadcastStatus() {
	s.mu.RLock()
	listener := s.statusListener
	s.mu.RUnlock()
	if listener != nil {
		listener(s.Status())
	}
}
