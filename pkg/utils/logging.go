package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger provides structured logging for the application
type Logger struct {
	verbose bool
	out     io.Writer
	err     io.Writer
}

// NewLogger creates a new logger instance writing to stdout and stderr
func NewLogger(verbose bool) *Logger {
	return &Logger{verbose: verbose, out: os.Stdout, err: os.Stderr}
}

// NewLoggerTo creates a logger writing to the given streams
func NewLoggerTo(verbose bool, out, errOut io.Writer) *Logger {
	return &Logger{verbose: verbose, out: out, err: errOut}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewLoggerTo(false, io.Discard, io.Discard)
}

// Verbose reports whether debug output is enabled
func (l *Logger) Verbose() bool {
	return l.verbose
}

// Success logs a success message in green
func (l *Logger) Success(msg string, args ...interface{}) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(l.out, green("✓ "+msg)+"\n", args...)
}

// Info logs an informational message in cyan
func (l *Logger) Info(msg string, args ...interface{}) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(l.out, cyan(msg)+"\n", args...)
}

// Warning logs a warning message in yellow
func (l *Logger) Warning(msg string, args ...interface{}) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(l.out, yellow("⚠ "+msg)+"\n", args...)
}

// Error logs an error message in red
func (l *Logger) Error(msg string, err error, args ...interface{}) {
	red := color.New(color.FgRed).SprintFunc()
	if err != nil {
		fmt.Fprintf(l.err, red("✗ "+msg+": %v")+"\n", append(args, err)...)
	} else {
		fmt.Fprintf(l.err, red("✗ "+msg)+"\n", args...)
	}
}

// Debug logs a debug message in dim/gray, only when verbose
func (l *Logger) Debug(msg string, args ...interface{}) {
	if !l.verbose {
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(l.out, dim(msg)+"\n", args...)
}
