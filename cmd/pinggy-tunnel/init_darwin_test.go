//go:build darwin

package main

import gc "gopkg.in/check.v1"

func (s *mainSuite) TestAppendPath(c *gc.C) {
	got := appendPath("/usr/bin:/opt/homebrew/bin", []string{"/opt/homebrew/bin", "/usr/local/bin"})
	c.Check(got, gc.Equals, "/usr/bin:/opt/homebrew/bin:/usr/local/bin")
	c.Check(appendPath("", []string{"/usr/local/bin"}), gc.Equals, "/usr/local/bin")
}
