// Package logger provides verbose logging for orderbot.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to show catalog refreshes and how each order
// line was resolved. Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log output. Tests swap in a buffer and restore
// os.Stderr afterwards.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// emit writes one line. quiet lines are dropped unless verbose is on.
func emit(quiet bool, line string) {
	mu.Lock()
	defer mu.Unlock()
	if quiet && !verbose {
		return
	}
	fmt.Fprintln(output, line)
}

// Debug traces resolution steps, e.g. which strategy matched a line.
func Debug(format string, args ...any) {
	emit(true, "[DEBUG] "+fmt.Sprintf(format, args...))
}

// Section prints a header before a multi-line trace such as a catalog refresh.
func Section(name string) {
	emit(true, "\n=== "+name+" ===")
}

// Info reports lifecycle events: refreshes, server start, synonym reloads.
func Info(format string, args ...any) {
	emit(true, "[INFO] "+fmt.Sprintf(format, args...))
}

// Warn reports recoverable problems such as a skipped synonym row or a
// stale snapshot being served.
func Warn(format string, args ...any) {
	emit(true, "[WARN] "+fmt.Sprintf(format, args...))
}

// Error prints regardless of verbose mode.
func Error(format string, args ...any) {
	emit(false, "[ERROR] "+fmt.Sprintf(format, args...))
}
