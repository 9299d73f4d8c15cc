package callbacks

import (
	"sync"

	"github.com/google/uuid"
)

// CallbackManager dispatches query-lifecycle events to registered handlers.
// A nil *CallbackManager is valid and drops all events.
type CallbackManager struct {
	handlers   []CallbackHandler
	traceMap   map[string][]string
	traceStack []string
	mu         sync.Mutex
}

// CallbackManagerOption configures a CallbackManager.
type CallbackManagerOption func(*CallbackManager)

// WithHandlers sets the handlers.
func WithHandlers(handlers []CallbackHandler) CallbackManagerOption {
	return func(m *CallbackManager) {
		m.handlers = handlers
	}
}

// NewCallbackManager creates a new CallbackManager.
func NewCallbackManager(opts ...CallbackManagerOption) *CallbackManager {
	m := &CallbackManager{
		handlers:   []CallbackHandler{},
		traceMap:   make(map[string][]string),
		traceStack: []string{BaseTraceEvent},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// OnEventStart runs handlers when an event starts and returns the event ID.
func (m *CallbackManager) OnEventStart(
	eventType CBEventType,
	payload map[string]interface{},
) string {
	if m == nil {
		return ""
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	eventID := uuid.New().String()
	parentID := m.traceStack[len(m.traceStack)-1]
	m.traceMap[parentID] = append(m.traceMap[parentID], eventID)

	for _, handler := range m.handlers {
		if !eventTypeIn(eventType, handler.EventStartsToIgnore()) {
			handler.OnEventStart(eventType, payload, eventID, parentID)
		}
	}

	if !IsLeafEvent(eventType) {
		m.traceStack = append(m.traceStack, eventID)
	}

	return eventID
}

// OnEventEnd runs handlers when an event ends.
func (m *CallbackManager) OnEventEnd(
	eventType CBEventType,
	payload map[string]interface{},
	eventID string,
) {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, handler := range m.handlers {
		if !eventTypeIn(eventType, handler.EventEndsToIgnore()) {
			handler.OnEventEnd(eventType, payload, eventID)
		}
	}

	if !IsLeafEvent(eventType) && len(m.traceStack) > 1 {
		m.traceStack = m.traceStack[:len(m.traceStack)-1]
	}
}

// AddHandler adds a handler to the callback manager.
func (m *CallbackManager) AddHandler(handler CallbackHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, handler)
}

// RemoveHandler removes a handler from the callback manager.
func (m *CallbackManager) RemoveHandler(handler CallbackHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, h := range m.handlers {
		if h == handler {
			m.handlers = append(m.handlers[:i], m.handlers[i+1:]...)
			return
		}
	}
}

// Handlers returns the current handlers.
func (m *CallbackManager) Handlers() []CallbackHandler {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handlers
}

// TraceMap returns a copy of the parent-to-children event map.
func (m *CallbackManager) TraceMap() map[string][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make(map[string][]string, len(m.traceMap))
	for k, v := range m.traceMap {
		result[k] = append([]string(nil), v...)
	}
	return result
}

func eventTypeIn(eventType CBEventType, types []CBEventType) bool {
	for _, t := range types {
		if t == eventType {
			return true
		}
	}
	return false
}
