package tunnel

import (
	"os"
	"time"

	"github.com/juju/clock"
	"gopkg.in/tomb.v2"

	"github.com/user/pinggy-tunnel/internal/logger"
)

// watcher polls the client output of one attempt until the URL shows up,
// the timeout passes, or it is killed.
type watcher struct {
	tomb tomb.Tomb

	clock    clock.Clock
	path     string
	marker   Marker
	interval time.Duration
	timeout  time.Duration

	attempt uint64
	found   func(attempt uint64, url string)
	expired func(attempt uint64)
}

func (w *watcher) start() {
	w.tomb.Go(func() error {
		defer logger.Recover("tunnel-watcher")
		return w.loop()
	})
}

// Kill stops the watcher without waiting for it.
func (w *watcher) Kill() {
	w.tomb.Kill(nil)
}

// Wait blocks until the watcher has exited.
func (w *watcher) Wait() error {
	return w.tomb.Wait()
}

func (w *watcher) loop() error {
	deadline := w.clock.NewTimer(w.timeout)
	defer deadline.Stop()
	timer := w.clock.NewTimer(w.interval)
	defer timer.Stop()

	for {
		select {
		case <-w.tomb.Dying():
			return tomb.ErrDying

		case <-timer.Chan():
			if w.poll() {
				return nil
			}
			timer.Reset(w.interval)

		case <-deadline.Chan():
			// Output written right before the deadline still counts.
			if w.poll() {
				return nil
			}
			w.expired(w.attempt)
			return nil
		}
	}
}

// poll reports whether the URL was found and handed over.
func (w *watcher) poll() bool {
	data, err := os.ReadFile(w.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("Reading tunnel output: %v", err)
		}
		return false
	}
	url, ok := w.marker.Find(string(data))
	if !ok {
		return false
	}
	w.found(w.attempt, url)
	return true
}
