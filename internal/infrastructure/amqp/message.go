package amqp

import (
	"encoding/json"
	"time"

	"github.com/iho/barberledger/internal/domain"
)

// RegisterEventMessage is the wire body of a register event.
type RegisterEventMessage struct {
	OccurredAt    time.Time      `json:"occurred_at"`
	Payload       map[string]any `json:"payload"`
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	AggregateType string         `json:"aggregate_type"`
	AggregateID   string         `json:"aggregate_id"`
}

// NewRegisterEventMessage copies event into its wire form.
func NewRegisterEventMessage(event *domain.Event) *RegisterEventMessage {
	return &RegisterEventMessage{
		ID:            event.ID,
		Type:          event.EventType,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		OccurredAt:    event.OccurredAt.UTC(),
		Payload:       event.Payload,
	}
}

// ToJSON converts the message to JSON bytes
func (m *RegisterEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RegisterEventMessageFromJSON decodes a message body.
func RegisterEventMessageFromJSON(data []byte) (*RegisterEventMessage, error) {
	var msg RegisterEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
