package tunnel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user/pinggy-tunnel/internal/config"
)

// Command is a resolved client invocation.
type Command struct {
	Path string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// BuildCommand returns the ssh invocation forwarding localhost:port through
// the configured relay, e.g.
//
//	ssh -o StrictHostKeyChecking=no -p 80 -R0:localhost:7860 a.pinggy.io
func BuildCommand(cfg config.Tunnel, port int) Command {
	strict := "no"
	if cfg.StrictHostKeyChecking {
		strict = "yes"
	}
	args := []string{"-o", "StrictHostKeyChecking=" + strict}
	for _, opt := range cfg.ExtraOptions {
		args = append(args, "-o", opt)
	}
	args = append(args,
		"-p", strconv.Itoa(cfg.ServerPort),
		fmt.Sprintf("-R0:localhost:%d", port),
		cfg.Server,
	)
	return Command{Path: cfg.Binary, Args: args}
}
