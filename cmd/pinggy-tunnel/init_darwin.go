//go:build darwin

package main

import (
	"os"
	"slices"
	"strings"
)

// Apps started from Finder get a minimal PATH, which hides a Homebrew or
// MacPorts OpenSSH that the user may have configured as the tunnel client.
var darwinClientDirs = []string{
	"/opt/homebrew/bin",
	"/usr/local/bin",
	"/opt/local/bin",
}

func init() {
	os.Setenv("PATH", appendPath(os.Getenv("PATH"), darwinClientDirs))
}

// appendPath adds dirs missing from the colon separated path, keeping order.
func appendPath(path string, dirs []string) string {
	parts := strings.Split(path, ":")
	for _, d := range dirs {
		if !slices.Contains(parts, d) {
			parts = append(parts, d)
		}
	}
	return strings.Join(slices.DeleteFunc(parts, func(p string) bool { return p == "" }), ":")
}
