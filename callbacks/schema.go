// Package callbacks provides event instrumentation for query execution.
package callbacks

import (
	"time"

	"github.com/google/uuid"
)

// TimestampFormat is the format for callback event timestamps.
const TimestampFormat = "01/02/2006, 15:04:05.000000"

// BaseTraceEvent is the base trace ID for the trace map.
const BaseTraceEvent = "root"

// CBEventType represents callback manager event types.
type CBEventType string

const (
	// CBEventTypeLLM logs for LLM calls.
	CBEventTypeLLM CBEventType = "llm"
	// CBEventTypeQuery logs for query operations.
	CBEventTypeQuery CBEventType = "query"
	// CBEventTypeRetrieve logs for retrieval operations.
	CBEventTypeRetrieve CBEventType = "retrieve"
	// CBEventTypeSynthesize logs for synthesis operations.
	CBEventTypeSynthesize CBEventType = "synthesize"
	// CBEventTypeTemplating logs for template operations.
	CBEventTypeTemplating CBEventType = "templating"
	// CBEventTypeException logs for exceptions.
	CBEventTypeException CBEventType = "exception"
)

// LeafEvents are events that will never have children events.
var LeafEvents = []CBEventType{
	CBEventTypeLLM,
	CBEventTypeTemplating,
}

// IsLeafEvent checks if an event type is a leaf event.
func IsLeafEvent(eventType CBEventType) bool {
	for _, leaf := range LeafEvents {
		if eventType == leaf {
			return true
		}
	}
	return false
}

// EventPayload represents payload keys for events.
type EventPayload string

const (
	// EventPayloadPrompt is the formatted prompt sent to LLM.
	EventPayloadPrompt EventPayload = "formatted_prompt"
	// EventPayloadCompletion is the completion from LLM.
	EventPayloadCompletion EventPayload = "completion"
	// EventPayloadQueryStr is the query used for query engine.
	EventPayloadQueryStr EventPayload = "query_str"
	// EventPayloadTemplate is the template used in LLM call.
	EventPayloadTemplate EventPayload = "template"
	// EventPayloadTemplateVars is the template variables used in LLM call.
	EventPayloadTemplateVars EventPayload = "template_vars"
	// EventPayloadNodes is a list of nodes.
	EventPayloadNodes EventPayload = "nodes"
	// EventPayloadResponse is the response from a query.
	EventPayloadResponse EventPayload = "response"
	// EventPayloadException is the error raised in an event.
	EventPayloadException EventPayload = "exception"
)

// CBEvent stores event information.
type CBEvent struct {
	// EventType is the type of the event.
	EventType CBEventType
	// Payload contains event-specific data.
	Payload map[string]interface{}
	// Time is the timestamp of the event.
	Time string
	// ID is the unique identifier for the event.
	ID string
}

// NewCBEvent creates a new CBEvent.
func NewCBEvent(eventType CBEventType, payload map[string]interface{}) *CBEvent {
	return &CBEvent{
		EventType: eventType,
		Payload:   payload,
		Time:      time.Now().Format(TimestampFormat),
		ID:        uuid.New().String(),
	}
}
