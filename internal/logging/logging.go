// Package logging provides file logging for the flicker CLI.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultLogDir returns the default log directory following XDG Base Directory Spec.
// Uses $XDG_STATE_HOME/flicker/logs, defaulting to ~/.local/state/flicker/logs.
func DefaultLogDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "flicker", "logs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return filepath.Join(".", "flicker", "logs")
	}
	return filepath.Join(home, ".local", "state", "flicker", "logs")
}

// level represents the logging level.
type level int

const (
	levelInfo level = iota
	levelDebug
)

// Logger wraps the standard logger with level filtering and file output.
// Beyond the generic Info/Debug pair, it exposes Warn/Error so the
// decoder driver and control plane can log flicker's own operational
// events (cycle boundaries, decoder/converter failures, playlist
// transitions) at the right severity instead of folding everything
// into one undifferentiated info stream.
type Logger struct {
	level    level
	logger   *log.Logger
	file     *os.File
	filePath string
}

// Setup creates a new logger that writes to a timestamped log file. It is
// called once per process (not per playback cycle); a playback session may
// run many cycles across a playlist against the same log file.
// Returns nil if logging is disabled (noLog=true).
// cmdArgs should be os.Args to log the command that was run.
func Setup(logDir string, verbose, noLog bool, cmdArgs []string) (*Logger, error) {
	if noLog {
		return nil, nil
	}

	// Create log directory
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	// Generate timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("flicker_session_%s.log", timestamp)
	filePath := filepath.Join(logDir, filename)

	// Open log file
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	level := levelInfo
	if verbose {
		level = levelDebug
	}

	logger := log.New(file, "", 0) // No flags - we add timestamps manually for consistent format

	l := &Logger{
		level:    level,
		logger:   logger,
		file:     file,
		filePath: filePath,
	}

	// Log startup
	l.Info("Command: %s", strings.Join(cmdArgs, " "))
	l.Info("flicker session starting")
	if verbose {
		l.Info("Debug level logging enabled")
	}
	l.Info("Log file: %s", filePath)

	return l, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// logLine writes one timestamped, tagged line unconditionally; callers
// gate on level before calling it.
func (l *Logger) logLine(tag, format string, args ...any) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	l.logger.Printf("%s [%s] "+format, append([]any{timestamp, tag}, args...)...)
}

// Info logs an info-level message.
func (l *Logger) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.logLine("INFO", format, args...)
}

// Debug logs a debug-level message (only if verbose mode is enabled).
// LoadProgress updates and other high-frequency, low-value events
// belong here rather than Info.
func (l *Logger) Debug(format string, args ...any) {
	if l == nil || l.level < levelDebug {
		return
	}
	l.logLine("DEBUG", format, args...)
}

// Warn logs a recoverable condition: a decoder/converter hiccup, a
// scratch-directory cleanup failure — something §7 treats as
// non-fatal but worth surfacing. Always emitted regardless of level.
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.logLine("WARN", format, args...)
}

// Error logs a fatal-to-the-cycle condition, such as a decoder that
// never started. Always emitted regardless of level.
func (l *Logger) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.logLine("ERROR", format, args...)
}
