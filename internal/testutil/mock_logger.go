// Package testutil provides shared test helpers for EatTrue packages.
package testutil

import (
	"context"
	"sync"

	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
)

// MockLogger implements logging.Logger and records every entry, including the
// fields accumulated through With. Children created by With share the parent's
// record.
type MockLogger struct {
	sink   *logSink
	fields []logging.Field
}

type logSink struct {
	mu       sync.Mutex
	messages []LogMessage
}

// LogMessage is a single captured entry.
type LogMessage struct {
	Level   string
	Message string
	Fields  []logging.Field
}

// NewMockLogger creates an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{sink: &logSink{}}
}

func (m *MockLogger) log(level, msg string, fields []logging.Field) {
	all := make([]logging.Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)

	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	m.sink.messages = append(m.sink.messages, LogMessage{Level: level, Message: msg, Fields: all})
}

func (m *MockLogger) Debug(msg string, fields ...logging.Field) { m.log("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...logging.Field)  { m.log("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...logging.Field)  { m.log("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...logging.Field) { m.log("error", msg, fields) }
func (m *MockLogger) Fatal(msg string, fields ...logging.Field) { m.log("fatal", msg, fields) }

func (m *MockLogger) With(fields ...logging.Field) logging.Logger {
	child := &MockLogger{sink: m.sink}
	child.fields = append(append(child.fields, m.fields...), fields...)
	return child
}

func (m *MockLogger) WithContext(ctx context.Context) logging.Logger {
	var fields []logging.Field
	if id := logging.RequestIDFromContext(ctx); id != "" {
		fields = append(fields, logging.String("request_id", id))
	}
	if id := logging.UserIDFromContext(ctx); id != "" {
		fields = append(fields, logging.String("user_id", id))
	}
	if len(fields) == 0 {
		return m
	}
	return m.With(fields...)
}

func (m *MockLogger) WithError(err error) logging.Logger {
	if err == nil {
		return m
	}
	return m.With(logging.Err(err))
}

func (m *MockLogger) Named(string) logging.Logger { return m }

func (m *MockLogger) Sync() error { return nil }

// GetMessages returns a copy of all captured entries.
func (m *MockLogger) GetMessages() []LogMessage {
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	out := make([]LogMessage, len(m.sink.messages))
	copy(out, m.sink.messages)
	return out
}

// Clear drops all captured entries.
func (m *MockLogger) Clear() {
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	m.sink.messages = m.sink.messages[:0]
}

// HasMessage reports whether an entry with the level and message was logged.
func (m *MockLogger) HasMessage(level, msg string) bool {
	for _, logged := range m.GetMessages() {
		if logged.Level == level && logged.Message == msg {
			return true
		}
	}
	return false
}

// FieldValue returns the value of key on the first entry with msg.
func (m *MockLogger) FieldValue(msg, key string) (interface{}, bool) {
	for _, logged := range m.GetMessages() {
		if logged.Message != msg {
			continue
		}
		for _, f := range logged.Fields {
			if f.Key == key {
				return f.Value, true
			}
		}
	}
	return nil, false
}

//Personal.AI order the ending
