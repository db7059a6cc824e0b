//go:build windows

package procutil

import (
	"os"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
)

// ExitGrace is how long to wait for a terminated child before touching files
// it had open. Windows refuses to delete a file another process holds.
const ExitGrace = 2 * time.Second

// Prepare configures the command to run without showing a console window.
func Prepare(cmd *exec.Cmd) *exec.Cmd {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
	return cmd
}

// Terminate kills p. Windows has no SIGTERM for console-less children.
func Terminate(p *os.Process) error {
	if p == nil {
		return os.ErrProcessDone
	}
	return p.Kill()
}
