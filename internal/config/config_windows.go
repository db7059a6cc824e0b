//go:build windows

package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath returns the configuration path next to the executable.
func GetConfigPath() string {
	return filepath.Join(exeDir(), "config.yaml")
}

func exeDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "." // fallback: current directory
	}
	return filepath.Dir(exe)
}

// defaultCacheDir keeps tunnel files under %LocalAppData% when available.
func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "pinggy_tunnel")
	}
	return filepath.Join(exeDir(), ".cache", "pinggy_tunnel")
}
