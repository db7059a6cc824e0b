//go:build linux

package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath returns the configuration path under the user config directory,
// falling back to the directory of the executable.
func GetConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pinggy-tunnel", "config.yaml")
	}
	exe, err := os.Executable()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(filepath.Dir(exe), "config.yaml")
}

// defaultCacheDir returns the cache directory for Linux.
func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "pinggy_tunnel")
	}
	return filepath.Join(".cache", "pinggy_tunnel")
}
