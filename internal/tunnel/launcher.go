package tunnel

import (
	"os"
	"os/exec"

	"github.com/juju/errors"

	"github.com/user/pinggy-tunnel/internal/procutil"
)

// Process is a running tunnel client.
type Process interface {
	// Pid returns the OS process id.
	Pid() int

	// Terminate asks the process to exit without waiting for it.
	Terminate() error

	// Wait blocks until the process exits.
	Wait() error
}

// Launcher spawns the tunnel client with stdout and stderr going to output.
type Launcher interface {
	Launch(cmd Command, output *os.File) (Process, error)
}

// ExecLauncher starts real processes.
type ExecLauncher struct{}

// Launch implements Launcher.
func (ExecLauncher) Launch(c Command, output *os.File) (Process, error) {
	path, err := exec.LookPath(c.Path)
	if err != nil {
		return nil, errors.Annotatef(err, "%s not found", c.Path)
	}

	cmd := procutil.Prepare(exec.Command(path, c.Args...))
	cmd.Stdout = output
	cmd.Stderr = output

	if err := cmd.Start(); err != nil {
		return nil, errors.Annotatef(err, "starting %s", c.Path)
	}
	return &execProcess{cmd: cmd}, nil
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Terminate() error {
	return procutil.Terminate(p.cmd.Process)
}

func (p *execProcess) Wait() error {
	return p.cmd.Wait()
}
