package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "HANDOFF_REQUESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewHandoffRequested builds the event emitted when a conversation is
// escalated to a human counselor.
func NewHandoffRequested(handoffId, sessionId, urgency, region string, triggers []string) BaseEvent {
	return BaseEvent{
		Type: "HANDOFF_REQUESTED",
		Data: map[string]interface{}{
			"handoff_id": handoffId,
			"session_id": sessionId,
			"urgency":    urgency,
			"region":     region,
			"triggers":   triggers,
		},
		OccurredAt: time.Now(),
	}
}
