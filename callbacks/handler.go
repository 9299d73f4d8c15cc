package callbacks

// CallbackHandler is the interface for callback handlers.
type CallbackHandler interface {
	// OnEventStart is called when an event starts. Returns the event ID.
	OnEventStart(
		eventType CBEventType,
		payload map[string]interface{},
		eventID string,
		parentID string,
	) string

	// OnEventEnd is called when an event ends.
	OnEventEnd(
		eventType CBEventType,
		payload map[string]interface{},
		eventID string,
	)

	// EventStartsToIgnore returns event types to ignore on start.
	EventStartsToIgnore() []CBEventType

	// EventEndsToIgnore returns event types to ignore on end.
	EventEndsToIgnore() []CBEventType
}

// BaseCallbackHandler provides a base implementation of CallbackHandler.
type BaseCallbackHandler struct {
	eventStartsToIgnore []CBEventType
	eventEndsToIgnore   []CBEventType
}

// NewBaseCallbackHandler creates a new BaseCallbackHandler.
func NewBaseCallbackHandler() *BaseCallbackHandler {
	return &BaseCallbackHandler{}
}

// OnEventStart is a no-op in the base handler.
func (h *BaseCallbackHandler) OnEventStart(
	eventType CBEventType,
	payload map[string]interface{},
	eventID string,
	parentID string,
) string {
	return eventID
}

// OnEventEnd is a no-op in the base handler.
func (h *BaseCallbackHandler) OnEventEnd(
	eventType CBEventType,
	payload map[string]interface{},
	eventID string,
) {
}

// EventStartsToIgnore returns event types to ignore on start.
func (h *BaseCallbackHandler) EventStartsToIgnore() []CBEventType {
	return h.eventStartsToIgnore
}

// EventEndsToIgnore returns event types to ignore on end.
func (h *BaseCallbackHandler) EventEndsToIgnore() []CBEventType {
	return h.eventEndsToIgnore
}
