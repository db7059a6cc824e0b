// Pinggy Tunnel - exposes a local port through a pinggy.io SSH reverse tunnel
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/juju/clock"
	"github.com/spf13/pflag"

	"github.com/user/pinggy-tunnel/internal/config"
	"github.com/user/pinggy-tunnel/internal/host"
	"github.com/user/pinggy-tunnel/internal/logger"
	"github.com/user/pinggy-tunnel/internal/tunnel"
	"github.com/user/pinggy-tunnel/internal/ui"
)

type options struct {
	port         int
	autostart    bool
	configPath   string
	cacheDir     string
	headless     bool
	pollInterval int
	timeout      int
	saveConfig   bool
	printLog     bool
	clearLog     bool
}

func main() {
	if err := run(host.TranslateArgs(os.Args[1:]), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "pinggy-tunnel: %v\n", err)
		os.Exit(1)
	}
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("pinggy-tunnel", pflag.ContinueOnError)
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == host.FriendlyFlag {
			name = host.AutostartFlag
		}
		return pflag.NormalizedName(name)
	})

	fs.IntVar(&opts.port, "port", 0, "local port to expose (default from config)")
	fs.BoolVar(&opts.autostart, host.AutostartFlag, false, "start the tunnel as soon as the app is up")
	fs.StringVar(&opts.configPath, "config", config.GetConfigPath(), "path to the configuration file")
	fs.StringVar(&opts.cacheDir, "cache-dir", "", "directory for the client output and application log")
	fs.BoolVar(&opts.headless, "headless", false, "run without the system tray")
	fs.IntVar(&opts.pollInterval, "poll-interval", 0, "seconds between output polls (default from config)")
	fs.IntVar(&opts.timeout, "timeout", 0, "seconds to wait for the public URL (default from config)")
	fs.BoolVar(&opts.saveConfig, "save-config", false, "write the command line overrides back to the config file")
	fs.BoolVar(&opts.printLog, "print-log", false, "print the application log and exit")
	fs.BoolVar(&opts.clearLog, "clear-log", false, "truncate the application log and exit")
	return fs
}

// loadConfig reads the config file and applies command line overrides,
// persisting them when asked to.
func loadConfig(fs *pflag.FlagSet, opts *options) (*config.Config, error) {
	mgr := config.NewManager(opts.configPath)
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	if fs.Changed("port") {
		cfg.Port = opts.port
	}
	if opts.autostart {
		cfg.Autostart = true
	}
	if opts.cacheDir != "" {
		cfg.Cache.Dir = opts.cacheDir
	}
	if fs.Changed("poll-interval") {
		cfg.Watch.PollInterval = opts.pollInterval
	}
	if fs.Changed("timeout") {
		cfg.Watch.Timeout = opts.timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.saveConfig {
		if err := mgr.Update(cfg); err != nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "Saved configuration to %s\n", mgr.Path())
	}
	return cfg, nil
}

func run(args []string, stdout io.Writer) error {
	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(fs, &opts)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Cache.LogPath(), logger.Rotation{
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		return err
	}
	if opts.printLog || opts.clearLog {
		defer logger.Close()
		return maintainLog(opts, stdout)
	}
	logger.Info("Pinggy Tunnel starting (port %d, config %s)", cfg.Port, opts.configPath)

	sup, err := tunnel.NewSupervisor(tunnel.SupervisorConfig{
		Config:   cfg,
		Clock:    clock.WallClock,
		Launcher: tunnel.ExecLauncher{},
	})
	if err != nil {
		logger.Close()
		return err
	}
	plugin := host.NewPlugin(sup, cfg.Port, cfg.Autostart)

	if opts.headless {
		return runHeadless(sup, plugin, cfg.Autostart)
	}

	ui.Run(ui.Options{
		Plugin:          plugin,
		Subscribe:       sup.SetStatusListener,
		RefreshInterval: cfg.Watch.RefreshIntervalDuration(),
	})
	return nil
}

// maintainLog handles --print-log and --clear-log.
func maintainLog(opts options, stdout io.Writer) error {
	if opts.printLog {
		logs, err := logger.ReadLogs()
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, logs)
	}
	if opts.clearLog {
		return logger.ClearLogs()
	}
	return nil
}

// startHeadless runs the app-started hook, and starts the tunnel itself when
// autostart is off since there is no other control. A failed start is left
// failed.
func startHeadless(plugin *host.Plugin, autostart bool) {
	plugin.AppStarted()
	if !autostart {
		plugin.StartTunnel(plugin.Port())
	}
}

// runHeadless prints status changes and log lines until interrupted.
func runHeadless(sup *tunnel.Supervisor, plugin *host.Plugin, autostart bool) error {
	defer logger.Close()

	logger.AddListener(func(line string) {
		fmt.Fprintln(os.Stderr, line)
	})
	sup.SetStatusListener(func(s tunnel.Session) {
		d := host.Describe(s)
		fmt.Printf("%s - %s\n", d.Status, d.URL)
	})

	startHeadless(plugin, autostart)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("Interrupted, stopping tunnel")
	plugin.Unload()
	return nil
}
