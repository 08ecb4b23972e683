// Package logger provides crash logging and panic recovery for TripWing.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const (
	// crashLogDir is the directory for crash logs under the base path.
	crashLogDir = "crash_logs"

	// maxCrashLogs is how many crash logs to keep before pruning.
	maxCrashLogs = 10
)

// crashContext carries the context included in a crash report.
type crashContext struct {
	mu        sync.RWMutex
	command   string
	lastInput string
	version   string
	basePath  string
}

var ctx = &crashContext{}

// SetBasePath sets where crash logs are written (typically ~/.tripwing).
func SetBasePath(path string) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.basePath = path
}

// SetVersion records the application version for crash reports.
func SetVersion(version string) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.version = version
}

// SetCommand records the command currently executing.
func SetCommand(cmd string) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.command = cmd
}

// SetLastInput records the last user input, truncated for the log.
func SetLastInput(input string) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.lastInput = truncate(strings.TrimSpace(input), 500)
}

func truncate(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// HandlePanic recovers a panic, writes a crash log and exits non-zero.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	path, err := writeCrashLog(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\ntripwing crashed: %v\n%s\n", r, debug.Stack())
		fmt.Fprintf(os.Stderr, "(crash log could not be written: %v)\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\ntripwing encountered an unexpected error.\n")
	fmt.Fprintf(os.Stderr, "A crash log was saved to %s\n", path)
	os.Exit(1)
}

func writeCrashLog(panicValue any) (string, error) {
	ctx.mu.RLock()
	report := fmt.Sprintf(`TRIPWING CRASH LOG

Timestamp: %s
Version:   %s
Command:   %s
Go:        %s
OS/Arch:   %s/%s

Panic: %v

%s`,
		time.Now().Format(time.RFC3339), ctx.version, ctx.command,
		runtime.Version(), runtime.GOOS, runtime.GOARCH,
		panicValue, debug.Stack())
	if ctx.lastInput != "" {
		report += fmt.Sprintf("\nLast input: %s\n", ctx.lastInput)
	}
	basePath := ctx.basePath
	ctx.mu.RUnlock()

	if basePath == "" {
		basePath = ".tripwing"
	}
	dir := filepath.Join(basePath, crashLogDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}
	pruneOldLogs(dir)

	path := filepath.Join(dir, fmt.Sprintf("crash_%s.log", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}
	return path, nil
}

// pruneOldLogs keeps only the most recent crash logs. ReadDir returns
// entries sorted by name, and the names embed timestamps, so the oldest
// come first. Pruning failures are ignored.
func pruneOldLogs(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, e.Name())
		}
	}
	for i := 0; i < len(logs)-maxCrashLogs+1; i++ {
		_ = os.Remove(filepath.Join(dir, logs[i]))
	}
}

// ListCrashLogs returns the paths of saved crash logs, oldest first.
func ListCrashLogs(basePath string) ([]string, error) {
	dir := filepath.Join(basePath, crashLogDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	return logs, nil
}
