// Package ui provides the system tray front end for the tunnel.
package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"fyne.io/systray"
	"github.com/juju/clock"

	"github.com/user/pinggy-tunnel/internal/host"
	"github.com/user/pinggy-tunnel/internal/logger"
	"github.com/user/pinggy-tunnel/internal/procutil"
	"github.com/user/pinggy-tunnel/internal/tunnel"
)

// Options configures the tray.
type Options struct {
	Plugin *host.Plugin
	// Subscribe registers a listener for immediate status updates.
	Subscribe       func(tunnel.StatusListener)
	RefreshInterval time.Duration
}

var (
	plugin       *host.Plugin
	refresher    *host.Refresher
	options      Options
	stateMu      sync.Mutex // guards currentState and currentURL
	currentState tunnel.State = tunnel.StateInactive
	currentURL   string

	// Systray menu items
	mStatus  *systray.MenuItem
	mURL     *systray.MenuItem
	mPort    *systray.MenuItem
	mStart   *systray.MenuItem
	mStop    *systray.MenuItem
	mOpenLog  *systray.MenuItem
	mClearLog *systray.MenuItem
	mQuit    *systray.MenuItem
)

// Run shows the tray and blocks until the user quits.
func Run(opts Options) {
	options = opts
	plugin = opts.Plugin
	systray.Run(onReady, onExit)
}

// onReady is called when systray is ready
func onReady() {
	systray.SetIcon(GetIcon(tunnel.StateInactive))
	systray.SetTitle("Pinggy Tunnel")
	systray.SetTooltip("Pinggy Tunnel: Inactive")

	mStatus = systray.AddMenuItem("Status: Inactive", "")
	mStatus.Disable()
	mURL = systray.AddMenuItem("No active tunnel", "Open the public URL")
	mURL.Disable()
	mPort = systray.AddMenuItem(fmt.Sprintf("Port: %d", plugin.Port()), "")
	mPort.Disable()

	systray.AddSeparator()

	mStart = systray.AddMenuItem("Start Tunnel", "")
	mStop = systray.AddMenuItem("Stop Tunnel", "")
	mStop.Disable()

	systray.AddSeparator()

	mOpenLog = systray.AddMenuItem("Open Log", "")
	mClearLog = systray.AddMenuItem("Clear Log", "Truncate the application log")
	mQuit = systray.AddMenuItem("Quit", "")

	if options.Subscribe != nil {
		options.Subscribe(func(s tunnel.Session) {
			show(host.Describe(s))
		})
	}

	var err error
	refresher, err = host.NewRefresher(host.RefresherConfig{
		Clock:    clock.WallClock,
		Interval: options.RefreshInterval,
		Status:   plugin.Status,
		Show:     show,
	})
	if err != nil {
		logger.Error("Failed to start status refresh: %v", err)
	}

	plugin.AppStarted()

	go func() {
		defer logger.Recover("systray-menu-loop")
		for {
			select {
			case <-mStart.ClickedCh:
				go doStart()
			case <-mStop.ClickedCh:
				go doStop()
			case <-mURL.ClickedCh:
				stateMu.Lock()
				url := currentURL
				stateMu.Unlock()
				go openTarget(url)
			case <-mOpenLog.ClickedCh:
				go openTarget(logger.GetLogPath())
			case <-mClearLog.ClickedCh:
				if err := logger.ClearLogs(); err != nil {
					logger.Error("Failed to clear log: %v", err)
				}
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

// onExit is called when systray exits
func onExit() {
	logger.Info("Pinggy Tunnel shutting down")
	if refresher != nil {
		refresher.Kill()
		refresher.Wait()
	}
	if plugin != nil {
		plugin.Unload()
	}
	logger.Close()
}

func doStart() {
	defer logger.Recover("doStart")
	logger.Info("User requested tunnel start")

	mStart.Disable()
	show(host.Describe(plugin.StartTunnel(plugin.Port())))
}

func doStop() {
	defer logger.Recover("doStop")
	logger.Info("User requested tunnel stop")

	mStop.Disable()
	show(host.Describe(plugin.StopTunnel()))
}

func show(d host.Display) {
	defer logger.Recover("show")
	stateMu.Lock()
	defer stateMu.Unlock()

	if d.State != currentState {
		systray.SetIcon(GetIcon(d.State))
	}
	currentState = d.State

	mStatus.SetTitle(d.Status)
	mURL.SetTitle(d.URL)
	mPort.SetTitle(fmt.Sprintf("Port: %d", plugin.Port()))

	switch d.State {
	case tunnel.StateActive:
		currentURL = d.URL
		systray.SetTooltip("Pinggy Tunnel: " + d.URL)
		mURL.Enable()
		mStart.Disable()
		mStop.Enable()

	case tunnel.StateConnecting:
		currentURL = ""
		systray.SetTooltip("Pinggy Tunnel: Connecting...")
		mURL.Disable()
		mStart.Disable()
		mStop.Enable()

	case tunnel.StateFailed:
		currentURL = ""
		systray.SetTooltip("Pinggy Tunnel: " + d.URL)
		mURL.Disable()
		mStart.Enable()
		mStop.Enable()

	default: // inactive
		currentURL = ""
		systray.SetTooltip("Pinggy Tunnel: Inactive")
		mURL.Disable()
		mStart.Enable()
		mStop.Disable()
	}
}

// openTarget hands a URL or file to the desktop's default handler.
func openTarget(target string) {
	defer logger.Recover("openTarget")
	if target == "" {
		return
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	case "darwin":
		cmd = exec.Command("open", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := procutil.Prepare(cmd).Start(); err != nil {
		logger.Error("Failed to open %s: %v", target, err)
		return
	}
	go cmd.Wait()
}
