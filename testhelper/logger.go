package testhelper

import (
	"fmt"
	"sync"

	"github.com/consensuslabs/reelstream/backend/internal/logger"
)

// LogEntry represents a log entry with its message and fields
type LogEntry struct {
	Message string
	Fields  map[string]interface{}
}

// logStore is shared by a TestLogger and every logger derived from it
type logStore struct {
	mu            sync.RWMutex
	infoMessages  []LogEntry
	errorMessages []LogEntry
	warnMessages  []LogEntry
	debugMessages []LogEntry
	debugEnabled  bool
}

// TestLogger records log calls so tests can assert on them.
// Loggers returned by WithFields write into the same store as their parent.
type TestLogger struct {
	store  *logStore
	fields map[string]interface{}
}

// NewTestLogger creates a new test logger instance
func NewTestLogger(debugEnabled bool) *TestLogger {
	return &TestLogger{
		store:  &logStore{debugEnabled: debugEnabled},
		fields: make(map[string]interface{}),
	}
}

func (t *TestLogger) append(list *[]LogEntry, msg string, fields map[string]interface{}) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	*list = append(*list, LogEntry{Message: msg, Fields: t.mergeFields(fields)})
}

// LogInfo implements logger.Logger
func (t *TestLogger) LogInfo(msg string, fields map[string]interface{}) {
	t.append(&t.store.infoMessages, msg, fields)
}

// LogError implements logger.Logger
func (t *TestLogger) LogError(err error, msg string) error {
	fields := map[string]interface{}{}
	if err != nil {
		fields["error"] = err.Error()
	}
	t.append(&t.store.errorMessages, msg, fields)
	return err
}

// LogErrorf implements logger.Logger
func (t *TestLogger) LogErrorf(err error, format string, args ...interface{}) error {
	return t.LogError(err, fmt.Sprintf(format, args...))
}

// LogFatal records the message as an error; tests never exit
func (t *TestLogger) LogFatal(err error, context string) {
	fields := map[string]interface{}{
		"context": context,
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	t.append(&t.store.errorMessages, "FATAL: "+context, fields)
}

// LogDebug implements logger.Logger
func (t *TestLogger) LogDebug(message string, fields map[string]interface{}) {
	t.store.mu.RLock()
	enabled := t.store.debugEnabled
	t.store.mu.RUnlock()
	if !enabled {
		return
	}
	t.append(&t.store.debugMessages, message, fields)
}

// LogWarn implements logger.Logger
func (t *TestLogger) LogWarn(message string, fields map[string]interface{}) {
	t.append(&t.store.warnMessages, message, fields)
}

// WithFields implements logger.Logger
func (t *TestLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return &TestLogger{store: t.store, fields: t.mergeFields(fields)}
}

// WithRequestID implements logger.Logger
func (t *TestLogger) WithRequestID(requestID string) logger.Logger {
	return t.WithFields(map[string]interface{}{
		"requestID": requestID,
	})
}

// WithUserID implements logger.Logger
func (t *TestLogger) WithUserID(userID string) logger.Logger {
	return t.WithFields(map[string]interface{}{
		"userID": userID,
	})
}

func (t *TestLogger) snapshot(list []LogEntry) []LogEntry {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return append([]LogEntry(nil), list...)
}

// GetInfoMessages returns all info level messages
func (t *TestLogger) GetInfoMessages() []LogEntry { return t.snapshot(t.store.infoMessages) }

// GetErrorMessages returns all error level messages
func (t *TestLogger) GetErrorMessages() []LogEntry { return t.snapshot(t.store.errorMessages) }

// GetWarnMessages returns all warning level messages
func (t *TestLogger) GetWarnMessages() []LogEntry { return t.snapshot(t.store.warnMessages) }

// GetDebugMessages returns all debug level messages
func (t *TestLogger) GetDebugMessages() []LogEntry { return t.snapshot(t.store.debugMessages) }

// ClearMessages clears all logged messages
func (t *TestLogger) ClearMessages() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.infoMessages = nil
	t.store.errorMessages = nil
	t.store.warnMessages = nil
	t.store.debugMessages = nil
}

// EnableDebug enables debug logging
func (t *TestLogger) EnableDebug() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.debugEnabled = true
}

// DisableDebug disables debug logging
func (t *TestLogger) DisableDebug() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.debugEnabled = false
}

// mergeFields merges the logger's base fields with the provided fields
func (t *TestLogger) mergeFields(fields map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(t.fields)+len(fields))
	for k, v := range t.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}
