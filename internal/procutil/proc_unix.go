//go:build unix

package procutil

import (
	"os"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// ExitGrace is how long to wait for a terminated child before touching files
// it had open. Unix lets open files be removed, so there is no wait.
const ExitGrace time.Duration = 0

// Prepare places the child in its own process group so Terminate can reach
// anything the client forks.
func Prepare(cmd *exec.Cmd) *exec.Cmd {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	return cmd
}

// Terminate sends SIGTERM to the process group of p, falling back to the
// process itself when the group is gone.
func Terminate(p *os.Process) error {
	if p == nil {
		return os.ErrProcessDone
	}
	if err := unix.Kill(-p.Pid, unix.SIGTERM); err == nil {
		return nil
	}
	return p.Signal(unix.SIGTERM)
}
