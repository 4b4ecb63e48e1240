// Package logging writes structured JSONL events for replay runs.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Category represents the subsystem generating the log
type Category string

const (
	CategoryTransition Category = "transition"
	CategoryReplay     Category = "replay"
	CategoryBrowser    Category = "browser"
	CategorySession    Category = "session"
)

// Event represents a structured log event
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Category  Category       `json:"category"`
	EventType string         `json:"type"`
	SessionID string         `json:"session_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// Logger writes structured events as JSON lines
type Logger struct {
	sessionID string
	out       io.Writer
	closer    io.Closer
	mu        sync.Mutex
	minLevel  Level
}

// NewLogger creates a logger writing to the given destination
func NewLogger(out io.Writer, sessionID string) *Logger {
	return &Logger{
		sessionID: sessionID,
		out:       out,
		minLevel:  LevelInfo,
	}
}

// NewFileLogger creates a logger appending JSONL to the given path,
// creating parent directories as needed
func NewFileLogger(path, sessionID string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := NewLogger(f, sessionID)
	l.closer = f
	return l, nil
}

// SetMinLevel sets the minimum severity that gets written
func (l *Logger) SetMinLevel(level Level) {
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

// Debug logs a debug-level event
func (l *Logger) Debug(category Category, eventType, message string, details map[string]any) {
	l.log(LevelDebug, category, eventType, message, details)
}

// Info logs an info-level event
func (l *Logger) Info(category Category, eventType, message string, details map[string]any) {
	l.log(LevelInfo, category, eventType, message, details)
}

// Warn logs a warn-level event
func (l *Logger) Warn(category Category, eventType, message string, details map[string]any) {
	l.log(LevelWarn, category, eventType, message, details)
}

// Error logs an error-level event
func (l *Logger) Error(category Category, eventType, message string, details map[string]any) {
	l.log(LevelError, category, eventType, message, details)
}

// Close releases the underlying file when the logger owns one
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

func (l *Logger) log(level Level, category Category, eventType, message string, details map[string]any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil || levelRank[level] < levelRank[l.minLevel] {
		return
	}

	event := Event{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Category:  category,
		EventType: eventType,
		SessionID: l.sessionID,
		Details:   details,
		Message:   message,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	l.out.Write(append(data, '\n'))
}
