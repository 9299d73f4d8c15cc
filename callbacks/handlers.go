package callbacks

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LoggingHandler is a callback handler that logs events.
type LoggingHandler struct {
	*BaseCallbackHandler
	writer    io.Writer
	verbose   bool
	mu        sync.Mutex
	startTime map[string]time.Time
}

// LoggingHandlerOption configures a LoggingHandler.
type LoggingHandlerOption func(*LoggingHandler)

// WithWriter sets the writer for logging.
func WithWriter(w io.Writer) LoggingHandlerOption {
	return func(h *LoggingHandler) {
		h.writer = w
	}
}

// WithVerbose sets verbose logging.
func WithVerbose(verbose bool) LoggingHandlerOption {
	return func(h *LoggingHandler) {
		h.verbose = verbose
	}
}

// NewLoggingHandler creates a new LoggingHandler.
func NewLoggingHandler(opts ...LoggingHandlerOption) *LoggingHandler {
	h := &LoggingHandler{
		BaseCallbackHandler: NewBaseCallbackHandler(),
		writer:              os.Stdout,
		startTime:           make(map[string]time.Time),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// OnEventStart logs the event start.
func (h *LoggingHandler) OnEventStart(
	eventType CBEventType,
	payload map[string]interface{},
	eventID string,
	parentID string,
) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.startTime[eventID] = time.Now()

	if h.verbose {
		fmt.Fprintf(h.writer, "[%s] Event START: %s (id=%s, parent=%s)\n",
			time.Now().Format(TimestampFormat), eventType, eventID, parentID)
		for k, v := range payload {
			fmt.Fprintf(h.writer, "  %s: %v\n", k, v)
		}
	} else {
		fmt.Fprintf(h.writer, "[%s] %s started\n",
			time.Now().Format(TimestampFormat), eventType)
	}

	return eventID
}

// OnEventEnd logs the event end with duration.
func (h *LoggingHandler) OnEventEnd(
	eventType CBEventType,
	payload map[string]interface{},
	eventID string,
) {
	h.mu.Lock()
	defer h.mu.Unlock()

	duration := time.Duration(0)
	if start, ok := h.startTime[eventID]; ok {
		duration = time.Since(start)
		delete(h.startTime, eventID)
	}

	if h.verbose {
		fmt.Fprintf(h.writer, "[%s] Event END: %s (id=%s, took=%s)\n",
			time.Now().Format(TimestampFormat), eventType, eventID, duration)
		for k, v := range payload {
			fmt.Fprintf(h.writer, "  %s: %v\n", k, v)
		}
	} else {
		fmt.Fprintf(h.writer, "[%s] %s finished in %s\n",
			time.Now().Format(TimestampFormat), eventType, duration)
	}
}

// CollectingHandler records every event it sees. Intended for tests.
type CollectingHandler struct {
	*BaseCallbackHandler
	mu     sync.Mutex
	events []*CBEvent
}

// NewCollectingHandler creates a new CollectingHandler.
func NewCollectingHandler() *CollectingHandler {
	return &CollectingHandler{
		BaseCallbackHandler: NewBaseCallbackHandler(),
	}
}

// OnEventStart records the event.
func (h *CollectingHandler) OnEventStart(
	eventType CBEventType,
	payload map[string]interface{},
	eventID string,
	parentID string,
) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, NewCBEvent(eventType, payload))
	return eventID
}

// OnEventEnd records the event.
func (h *CollectingHandler) OnEventEnd(
	eventType CBEventType,
	payload map[string]interface{},
	eventID string,
) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, NewCBEvent(eventType, payload))
}

// EventsOfType returns recorded events of the given type.
func (h *CollectingHandler) EventsOfType(eventType CBEventType) []*CBEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	var result []*CBEvent
	for _, e := range h.events {
		if e.EventType == eventType {
			result = append(result, e)
		}
	}
	return result
}

// Events returns all recorded events.
func (h *CollectingHandler) Events() []*CBEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*CBEvent(nil), h.events...)
}

var _ CallbackHandler = (*LoggingHandler)(nil)
var _ CallbackHandler = (*CollectingHandler)(nil)
