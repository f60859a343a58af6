package logger

import (
	"encoding/json"
	"io"
	"log"
	"maps"
	"os"
	"strings"
	"time"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

// Logger represents a configurable logger instance
type Logger struct {
	level  Level
	logger *log.Logger
	fields map[string]any
}

// logEntry represents a structured log entry
type logEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// New creates a new logger writing JSON lines to output (stdout when nil)
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}

	return &Logger{
		level:  parseLevel(level),
		logger: log.New(output, "", 0),
	}
}

// Discard returns a logger that drops every entry. Handy in tests.
func Discard() *Logger {
	return New("FATAL", io.Discard)
}

func parseLevel(level string) Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// With returns a child logger that adds fields to every entry.
func (l *Logger) With(fields map[string]any) *Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)

	return &Logger{
		level:  l.level,
		logger: l.logger,
		fields: merged,
	}
}

func (l *Logger) writeLogEntry(level Level, message string, fields map[string]any) {
	if l.level > level {
		return
	}

	var all map[string]any
	if len(l.fields) > 0 || len(fields) > 0 {
		all = make(map[string]any, len(l.fields)+len(fields))
		maps.Copy(all, l.fields)
		maps.Copy(all, fields)
	}

	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Fields:    all,
	}

	if data, err := json.Marshal(entry); err == nil {
		l.logger.Println(string(data))
	} else {
		// Fallback to simple format if JSON fails
		l.logger.Printf("[%s] %s", entry.Level, message)
	}
}

func first(fields []map[string]any) map[string]any {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}

// Core logging methods - always structured
func (l *Logger) Debug(message string, fields ...map[string]any) {
	l.writeLogEntry(DEBUG, message, first(fields))
}

func (l *Logger) Info(message string, fields ...map[string]any) {
	l.writeLogEntry(INFO, message, first(fields))
}

func (l *Logger) Warn(message string, fields ...map[string]any) {
	l.writeLogEntry(WARN, message, first(fields))
}

func (l *Logger) Error(message string, fields ...map[string]any) {
	l.writeLogEntry(ERROR, message, first(fields))
}

// Task logs an event about a single task at INFO level.
func (l *Logger) Task(taskID uint64, message string, fields ...map[string]any) {
	allFields := map[string]any{
		"task_id": taskID,
		"type":    "task",
	}

	if f := first(fields); f != nil {
		maps.Copy(allFields, f)
	}

	l.writeLogEntry(INFO, message, allFields)
}

func (l *Logger) HTTP(method, path string, statusCode int, duration time.Duration, fields ...map[string]any) {
	allFields := map[string]any{
		"http_method": method,
		"http_path":   path,
		"http_status": statusCode,
		"duration_ns": duration.Nanoseconds(),
		"type":        "http_request",
	}

	if f := first(fields); f != nil {
		maps.Copy(allFields, f)
	}

	l.writeLogEntry(INFO, "HTTP request completed", allFields)
}
