package domain

import "time"

// Event types
const (
	EventTypeRegisterCreated = "register.created"
	EventTypeRegisterUpdated = "register.updated"
	EventTypeRegisterDeleted = "register.deleted"
)

// Aggregate types
const (
	AggregateTypeRegister = "register"
)

// Event is a change notification emitted after a register mutation.
type Event struct {
	OccurredAt    time.Time
	Payload       map[string]any
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
}

// NewRegisterEvent builds an event for a register mutation. For deletions
// only the ID is carried.
func NewRegisterEvent(id, eventType string, entry *RegisterEntry, at time.Time) *Event {
	payload := map[string]any{"register_id": entry.ID}
	if eventType != EventTypeRegisterDeleted {
		payload["is_incoming"] = entry.IsIncoming
		payload["description"] = entry.Description
		payload["value"] = entry.Value.String()
		payload["date"] = entry.Date.UTC().Format(time.RFC3339)
	}

	return &Event{
		ID:            id,
		AggregateID:   entry.ID,
		AggregateType: AggregateTypeRegister,
		EventType:     eventType,
		Payload:       payload,
		OccurredAt:    at,
	}
}
