package host

import (
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"gopkg.in/tomb.v2"

	"github.com/user/pinggy-tunnel/internal/logger"
	"github.com/user/pinggy-tunnel/internal/tunnel"
)

// RefresherConfig encapsulates the configuration of a Refresher.
type RefresherConfig struct {
	Clock    clock.Clock
	Interval time.Duration
	Status   func() tunnel.Session
	Show     func(Display)
}

// Validate ensures that the config values are valid.
func (c *RefresherConfig) Validate() error {
	if c.Clock == nil {
		return errors.NotValidf("missing Clock")
	}
	if c.Interval <= 0 {
		return errors.NotValidf("interval %v", c.Interval)
	}
	if c.Status == nil {
		return errors.NotValidf("missing Status")
	}
	if c.Show == nil {
		return errors.NotValidf("missing Show")
	}
	return nil
}

// Refresher pushes the session to a display at a fixed interval.
type Refresher struct {
	tomb tomb.Tomb
	cfg  RefresherConfig
}

// NewRefresher starts a Refresher. It shows the current status right away.
func NewRefresher(cfg RefresherConfig) (*Refresher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	r := &Refresher{cfg: cfg}
	r.tomb.Go(func() error {
		defer logger.Recover("status-refresher")
		return r.loop()
	})
	return r, nil
}

// Kill is part of the worker.Worker interface.
func (r *Refresher) Kill() {
	r.tomb.Kill(nil)
}

// Wait is part of the worker.Worker interface.
func (r *Refresher) Wait() error {
	return r.tomb.Wait()
}

func (r *Refresher) loop() error {
	r.refresh()

	timer := r.cfg.Clock.NewTimer(r.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-r.tomb.Dying():
			return tomb.ErrDying
		case <-timer.Chan():
			r.refresh()
			timer.Reset(r.cfg.Interval)
		}
	}
}

func (r *Refresher) refresh() {
	r.cfg.Show(Describe(r.cfg.Status()))
}
