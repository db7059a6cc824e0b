// Package logger provides centralized logging for the tunnel supervisor.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/juju/lumberjack/v2"
)

// Rotation controls when the application log is rotated.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

var (
	logFile   *lumberjack.Logger
	logMutex  sync.Mutex
	logPath   string
	listeners []func(string)
	listMutex sync.RWMutex
)

const timeFormat = "2006-01-02 15:04:05"

// Init opens the rotating log at path. Until Init is called, messages only
// reach listeners.
func Init(path string, rot Rotation) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	if logFile != nil {
		logFile.Close()
	}
	logPath = path
	logFile = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rot.MaxSizeMB,
		MaxBackups: rot.MaxBackups,
		Compress:   rot.Compress,
		LocalTime:  true,
	}
	return nil
}

// Close closes the log file
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// AddListener adds a callback that receives log messages
func AddListener(fn func(string)) {
	listMutex.Lock()
	defer listMutex.Unlock()
	listeners = append(listeners, fn)
}

// Log writes a log message
func Log(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s", time.Now().Format(timeFormat), message)

	logMutex.Lock()
	if logFile != nil {
		logFile.Write([]byte(line + "\n"))
	}
	logMutex.Unlock()

	listMutex.RLock()
	for _, fn := range listeners {
		go fn(line)
	}
	listMutex.RUnlock()
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	Log("INFO: "+format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	Log("ERROR: "+format, args...)
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	Log("DEBUG: "+format, args...)
}

// Warning logs a warning message
func Warning(format string, args ...interface{}) {
	Log("WARN: "+format, args...)
}

// GetLogPath returns the path to the log file
func GetLogPath() string {
	logMutex.Lock()
	defer logMutex.Unlock()
	return logPath
}

// Recover should be deferred at the top of every goroutine to catch panics.
// Usage: go func() { defer logger.Recover("myGoroutine"); ... }()
func Recover(name string) {
	if r := recover(); r != nil {
		Error("PANIC in %s: %v\n%s", name, r, debug.Stack())
	}
}

// SafeGo launches a goroutine with panic recovery.
func SafeGo(name string, fn func()) {
	go func() {
		defer Recover(name)
		fn()
	}()
}

// ReadLogs reads the current log file contents. Rotated backups are not included.
func ReadLogs() (string, error) {
	path := GetLogPath()
	if path == "" {
		return "", fmt.Errorf("logger not initialized")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// Nothing logged yet.
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ClearLogs truncates the current log file. Rotated backups are kept.
func ClearLogs() error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile == nil {
		return nil
	}
	// lumberjack reopens the file on the next write.
	if err := logFile.Close(); err != nil {
		return err
	}
	return os.WriteFile(logPath, []byte{}, 0644)
}
