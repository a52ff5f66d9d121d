package internal

import (
	"log"
	"os"
)

// LogLevel orders verbosity from quiet to chatty.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger writes leveled lines through the standard log package. A message
// is emitted only when its level is at or below the configured one, so a
// survey run at the default level stays quiet about per-column detail.
type Logger struct {
	level LogLevel
}

// NewLogger returns a logger fixed at the given level.
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level}
}

// NewDefaultLogger picks the level from the LOG_LEVEL environment
// variable (ERROR, WARN, DEBUG), falling back to info.
func NewDefaultLogger() *Logger {
	level := LogLevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		level = LogLevelError
	case "WARN":
		level = LogLevelWarn
	case "DEBUG":
		level = LogLevelDebug
	}
	return &Logger{level: level}
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// GetLevel reports the configured level, mainly for tests.
func (l *Logger) GetLevel() LogLevel {
	return l.level
}
