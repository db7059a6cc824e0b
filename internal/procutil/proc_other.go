//go:build !unix && !windows

package procutil

import (
	"os"
	"os/exec"
	"time"
)

// ExitGrace is how long to wait for a terminated child before touching files
// it had open.
const ExitGrace time.Duration = 0

// Prepare is a no-op on this platform.
func Prepare(cmd *exec.Cmd) *exec.Cmd {
	return cmd
}

// Terminate kills p.
func Terminate(p *os.Process) error {
	if p == nil {
		return os.ErrProcessDone
	}
	return p.Kill()
}
