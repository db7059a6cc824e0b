package config

import (
	"strings"

	"github.com/juju/errors"
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Version < 1 {
		return errors.NotValidf("config version %d", c.Version)
	}
	if err := ValidatePort(c.Port); err != nil {
		return errors.Trace(err)
	}
	if err := c.Tunnel.Validate(); err != nil {
		return errors.Annotate(err, "tunnel config")
	}
	if err := c.Watch.Validate(); err != nil {
		return errors.Annotate(err, "watch config")
	}
	if err := c.Marker.Validate(); err != nil {
		return errors.Annotate(err, "marker config")
	}
	if err := c.Cache.Validate(); err != nil {
		return errors.Annotate(err, "cache config")
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return errors.NotValidf("negative log rotation settings")
	}
	return nil
}

// ValidatePort checks that port is a usable TCP port number.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return errors.NotValidf("port %d", port)
	}
	return nil
}

// Validate validates the ssh invocation settings.
func (t *Tunnel) Validate() error {
	if t.Binary == "" {
		return errors.NotValidf("empty binary")
	}
	if t.Server == "" {
		return errors.NotValidf("empty server")
	}
	if t.ServerPort < 1 || t.ServerPort > 65535 {
		return errors.NotValidf("server_port %d", t.ServerPort)
	}
	for _, opt := range t.ExtraOptions {
		if !strings.Contains(opt, "=") {
			return errors.NotValidf("extra option %q (expected Key=Value)", opt)
		}
	}
	return nil
}

// Validate validates the polling settings.
func (w *Watch) Validate() error {
	if w.PollInterval < 0 || w.Timeout < 0 || w.RefreshInterval < 0 {
		return errors.NotValidf("negative interval")
	}
	if w.PollInterval > 0 && w.Timeout > 0 && w.PollInterval > w.Timeout {
		return errors.NotValidf("poll_interval %ds longer than timeout %ds", w.PollInterval, w.Timeout)
	}
	return nil
}

// Validate validates the URL marker.
func (m *Marker) Validate() error {
	if m.Prefix == "" {
		return errors.NotValidf("empty prefix")
	}
	if m.Suffix == "" {
		return errors.NotValidf("empty suffix")
	}
	return nil
}

// Validate validates the cache file names.
func (c *Cache) Validate() error {
	if c.OutputFile == "" {
		return errors.NotValidf("empty output_file")
	}
	if c.LogFile == "" {
		return errors.NotValidf("empty log_file")
	}
	if c.OutputFile == c.LogFile {
		return errors.NotValidf("output_file and log_file both %q", c.LogFile)
	}
	return nil
}
