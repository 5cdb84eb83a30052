package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EventCheckoutCompleted = "checkout.completed"

type Event struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     json.RawMessage
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// NewEvent marshals payload into a fresh, unpublished event.
func NewEvent(aggregateID, eventType string, payload any) (*Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		EventType:   eventType,
		Payload:     b,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
