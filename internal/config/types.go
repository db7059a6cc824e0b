// Package config handles tunnel configuration loading, saving, and validation.
package config

import (
	"path/filepath"
	"time"
)

// Config represents the main configuration structure.
type Config struct {
	Version   int    `yaml:"version"`
	Port      int    `yaml:"port"`
	Autostart bool   `yaml:"autostart"`
	Tunnel    Tunnel `yaml:"tunnel"`
	Watch     Watch  `yaml:"watch"`
	Marker    Marker `yaml:"marker"`
	Cache     Cache  `yaml:"cache"`
	Log       Log    `yaml:"log"`
}

// Tunnel describes how the external ssh client is invoked.
type Tunnel struct {
	Binary                string   `yaml:"binary"`
	Server                string   `yaml:"server"`
	ServerPort            int      `yaml:"server_port"`
	StrictHostKeyChecking bool     `yaml:"strict_host_key_checking"`
	ExtraOptions          []string `yaml:"extra_options,omitempty"` // passed as -o <value>
}

// Watch controls how the client output is polled for the public URL.
// All values are in seconds.
type Watch struct {
	PollInterval    int `yaml:"poll_interval"`
	Timeout         int `yaml:"timeout"`
	RefreshInterval int `yaml:"refresh_interval"` // status refresh for front ends
}

// Marker is the pair of substrings delimiting the public URL in the client output.
type Marker struct {
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
}

// Cache locates the files written while a tunnel runs.
type Cache struct {
	Dir        string `yaml:"dir,omitempty"` // empty = platform default
	OutputFile string `yaml:"output_file"`
	LogFile    string `yaml:"log_file"`
}

// Log configures rotation of the application log.
type Log struct {
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	Compress   bool `yaml:"compress"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		Port:      7860,
		Autostart: false,
		Tunnel: Tunnel{
			Binary:     "ssh",
			Server:     "a.pinggy.io",
			ServerPort: 80,
		},
		Watch: Watch{
			PollInterval:    2,
			Timeout:         30,
			RefreshInterval: 3,
		},
		Marker: Marker{
			Prefix: "http:",
			Suffix: ".pinggy.link",
		},
		Cache: Cache{
			OutputFile: "output.txt",
			LogFile:    "pinggy.log",
		},
		Log: Log{
			MaxSizeMB:  10,
			MaxBackups: 3,
			Compress:   false,
		},
	}
}

// PollIntervalDuration returns the watch poll interval, falling back to 2s.
func (w Watch) PollIntervalDuration() time.Duration {
	return seconds(w.PollInterval, 2)
}

// TimeoutDuration returns the overall wait for the URL, falling back to 30s.
func (w Watch) TimeoutDuration() time.Duration {
	return seconds(w.Timeout, 30)
}

// RefreshIntervalDuration returns the front-end refresh period, falling back to 3s.
func (w Watch) RefreshIntervalDuration() time.Duration {
	return seconds(w.RefreshInterval, 3)
}

func seconds(v, def int) time.Duration {
	if v <= 0 {
		v = def
	}
	return time.Duration(v) * time.Second
}

// Directory returns the cache directory, using the platform default when unset.
func (c Cache) Directory() string {
	if c.Dir != "" {
		return c.Dir
	}
	return defaultCacheDir()
}

// OutputPath returns the full path of the client output file.
func (c Cache) OutputPath() string {
	return filepath.Join(c.Directory(), c.OutputFile)
}

// LogPath returns the full path of the application log.
func (c Cache) LogPath() string {
	return filepath.Join(c.Directory(), c.LogFile)
}
