package database

import (
	"fmt"
	"sync"
)

// mockLogEntry represents a log entry with its message and fields
type mockLogEntry struct {
	Message string
	Fields  map[string]interface{}
}

// mockLogStore is shared by a logger and every logger derived from it
type mockLogStore struct {
	mu            sync.RWMutex
	infoMessages  []mockLogEntry
	errorMessages []mockLogEntry
	warnMessages  []mockLogEntry
	debugMessages []mockLogEntry
	fatalMessages []mockLogEntry
}

// mockLogger provides a logger implementation for testing
type mockLogger struct {
	store  *mockLogStore
	fields map[string]interface{}
}

func newMockLogger() *mockLogger {
	return &mockLogger{
		store:  &mockLogStore{},
		fields: make(map[string]interface{}),
	}
}

func (m *mockLogger) record(list *[]mockLogEntry, msg string, fields map[string]interface{}) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	*list = append(*list, mockLogEntry{Message: msg, Fields: m.mergeFields(fields)})
}

func (m *mockLogger) LogInfo(msg string, fields map[string]interface{}) {
	m.record(&m.store.infoMessages, msg, fields)
}

func (m *mockLogger) LogError(err error, msg string) error {
	fields := map[string]interface{}{}
	if err != nil {
		fields["error"] = err.Error()
	}
	m.record(&m.store.errorMessages, msg, fields)
	return err
}

func (m *mockLogger) LogErrorf(err error, format string, args ...interface{}) error {
	return m.LogError(err, fmt.Sprintf(format, args...))
}

func (m *mockLogger) LogWarn(message string, fields map[string]interface{}) {
	m.record(&m.store.warnMessages, message, fields)
}

func (m *mockLogger) LogDebug(message string, fields map[string]interface{}) {
	m.record(&m.store.debugMessages, message, fields)
}

func (m *mockLogger) LogFatal(err error, context string) {
	fields := map[string]interface{}{"context": context}
	if err != nil {
		fields["error"] = err.Error()
	}
	m.record(&m.store.fatalMessages, "FATAL: "+context, fields)
}

// WithFields creates a derived logger that writes to the same store
func (m *mockLogger) WithFields(fields map[string]interface{}) Logger {
	return &mockLogger{store: m.store, fields: m.mergeFields(fields)}
}

func (m *mockLogger) WithRequestID(requestID string) Logger {
	return m.WithFields(map[string]interface{}{"request_id": requestID})
}

func (m *mockLogger) WithUserID(userID string) Logger {
	return m.WithFields(map[string]interface{}{"user_id": userID})
}

func (m *mockLogger) GetInfoMessages() []mockLogEntry {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.infoMessages
}

func (m *mockLogger) GetErrorMessages() []mockLogEntry {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.errorMessages
}

func (m *mockLogger) GetWarnMessages() []mockLogEntry {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.warnMessages
}

func (m *mockLogger) GetDebugMessages() []mockLogEntry {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.debugMessages
}

// ClearMessages clears all logged messages
func (m *mockLogger) ClearMessages() {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.infoMessages = nil
	m.store.errorMessages = nil
	m.store.warnMessages = nil
	m.store.debugMessages = nil
	m.store.fatalMessages = nil
}

// mergeFields merges the logger's base fields with the provided fields
func (m *mockLogger) mergeFields(fields map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(m.fields)+len(fields))
	for k, v := range m.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}
