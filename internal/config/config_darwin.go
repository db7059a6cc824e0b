//go:build darwin

package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath returns the configuration path.
// Uses ~/Library/Application Support/Pinggy Tunnel/ so the file stays writable
// when running from a signed .app bundle.
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, "Library", "Application Support", "Pinggy Tunnel", "config.yaml")
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "pinggy_tunnel")
	}
	return filepath.Join(".cache", "pinggy_tunnel")
}
