package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// ParseLevel translates a string representation (as produced by LogLevelToString,
// in any case) to a log level enum
func ParseLevel(s string) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TraceLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "", "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger writes messages at or above a minimum level
type Logger struct {
	out   *log.Logger
	level int
}

// New creates a Logger writing to w
func New(w io.Writer, level int) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags), level: level}
}

// Default creates an INFO Logger writing to stderr
func Default() *Logger {
	return New(os.Stderr, InfoLevel)
}

// Discard creates a Logger which drops every message
func Discard() *Logger {
	return New(io.Discard, FatalLevel+1)
}

// Level returns the minimum level of messages written by this Logger
func (l *Logger) Level() int {
	return l.level
}

// Enabled returns true iff messages at the given level are written
func (l *Logger) Enabled(level int) bool {
	return level >= l.level
}

// Logf writes a message at the given level
func (l *Logger) Logf(level int, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.out.Printf("level [%s]: %s", LogLevelToString(level), fmt.Sprintf(format, args...))
}

// Debugf writes a DEBUG message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logf(DebugLevel, format, args...)
}

// Infof writes an INFO message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logf(InfoLevel, format, args...)
}

// Warnf writes a WARN message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Logf(WarnLevel, format, args...)
}

// Errorf writes an ERROR message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logf(ErrorLevel, format, args...)
}
