package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/google/uuid"
)

// Message is a balance event waiting to be relayed to the event stream.
type Message struct {
	ID            int64               `json:"id"`
	EventID       uuid.UUID           `json:"event_id"`
	EventType     shared.EventType    `json:"event_type"`
	AggregateID   int64               `json:"aggregate_id"` // account the event is keyed by
	Payload       json.RawMessage     `json:"payload"`
	Status        shared.OutboxStatus `json:"status"`
	Attempts      int                 `json:"attempts"`
	CreatedAt     time.Time           `json:"created_at"`
	LastAttemptAt *time.Time          `json:"last_attempt_at,omitempty"`
}

// NewMessage serializes event into a pending message. The first movement's
// account is used as the partition key so events of one account stay ordered.
func NewMessage(event *shared.BalanceEvent) (*Message, error) {
	if len(event.Movements) == 0 {
		return nil, fmt.Errorf("%w: no movements", shared.ErrInvalidEvent)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal balance event: %w", err)
	}

	return &Message{
		EventID:     event.EventID,
		EventType:   event.Type,
		AggregateID: event.Movements[0].AccountID,
		Payload:     payload,
		Status:      shared.OutboxStatusPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (m *Message) IncrementAttempts() {
	m.Attempts++
	now := time.Now().UTC()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsProcessed() {
	m.Status = shared.OutboxStatusProcessed
	now := time.Now().UTC()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsFailed() {
	m.Status = shared.OutboxStatusFailedToPublish
	now := time.Now().UTC()
	m.LastAttemptAt = &now
}

// Event decodes the payload back into a balance event.
func (m *Message) Event() (*shared.BalanceEvent, error) {
	var event shared.BalanceEvent
	if err := json.Unmarshal(m.Payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
