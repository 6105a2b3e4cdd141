// Package logger provides structured logging utilities.
//
// Loggers write to the console and, when a log file is configured, to that
// file as well. Debug output is only produced when the level is "debug".
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	// InfoLogger handles informational messages.
	InfoLogger *log.Logger
	// ErrorLogger handles error messages.
	ErrorLogger *log.Logger
	// DebugLogger handles debug messages.
	DebugLogger *log.Logger

	logFile *os.File
)

// Initialize sets up the loggers. When logPath is non-empty the file is
// opened in append mode and every message is written to both the console
// and the file. A file that cannot be opened degrades to console-only
// logging with an error line, it is never fatal.
func Initialize(level string, logPath string) error {
	flags := log.Ldate | log.Ltime
	if level == "debug" {
		flags |= log.Lshortfile
	}

	infoOut := io.Writer(os.Stdout)
	errorOut := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: failed to open log file %s: %v\n", logPath, err)
		} else {
			logFile = f
			infoOut = io.MultiWriter(os.Stdout, f)
			errorOut = io.MultiWriter(os.Stderr, f)
		}
	}

	InfoLogger = log.New(infoOut, "INFO: ", flags)
	ErrorLogger = log.New(errorOut, "ERROR: ", flags)

	if level == "debug" {
		DebugLogger = log.New(infoOut, "DEBUG: ", flags)
	} else {
		DebugLogger = log.New(io.Discard, "", 0)
	}

	return nil
}

// Info logs informational messages.
func Info(message string, args ...interface{}) {
	if InfoLogger != nil {
		InfoLogger.Printf(message, args...)
	}
}

// Error logs error messages.
func Error(message string, args ...interface{}) {
	if ErrorLogger != nil {
		ErrorLogger.Printf(message, args...)
	}
}

// Debug logs debug messages. No output unless initialized at debug level.
func Debug(message string, args ...interface{}) {
	if DebugLogger != nil {
		DebugLogger.Printf(message, args...)
	}
}

// Fatal logs fatal messages and terminates the program.
func Fatal(message string, args ...interface{}) {
	if ErrorLogger != nil {
		ErrorLogger.Printf(message, args...)
	}
	os.Exit(1)
}

// Sync flushes the log file, if one is open.
func Sync() {
	if logFile != nil {
		_ = logFile.Sync()
	}
}
