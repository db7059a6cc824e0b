package tunnel_test

import (
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/user/pinggy-tunnel/internal/config"
	"github.com/user/pinggy-tunnel/internal/tunnel"
)

type commandSuite struct{}

var _ = gc.Suite(&commandSuite{})

func (s *commandSuite) TestDefaultCommand(c *gc.C) {
	cmd := tunnel.BuildCommand(config.DefaultConfig().Tunnel, 7860)
	c.Check(cmd, jc.DeepEquals, tunnel.Command{
		Path: "ssh",
		Args: []string{"-o", "StrictHostKeyChecking=no", "-p", "80", "-R0:localhost:7860", "a.pinggy.io"},
	})
	c.Check(cmd.String(), gc.Equals, "ssh -o StrictHostKeyChecking=no -p 80 -R0:localhost:7860 a.pinggy.io")
}

func (s *commandSuite) TestCustomCommand(c *gc.C) {
	cfg := config.Tunnel{
		Binary:                "/usr/bin/ssh",
		Server:                "eu.example.io",
		ServerPort:            443,
		StrictHostKeyChecking: true,
		ExtraOptions:          []string{"ServerAliveInterval=30"},
	}
	cmd := tunnel.BuildCommand(cfg, 3000)
	c.Check(cmd.Args, jc.DeepEquals, []string{
		"-o", "StrictHostKeyChecking=yes",
		"-o", "ServerAliveInterval=30",
		"-p", "443", "-R0:localhost:3000", "eu.example.io",
	})
	c.Check(cmd.Path, gc.Equals, "/usr/bin/ssh")
}
