package outbox_poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/banking-transfer-api/internal/domain/outbox"
	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/banking-transfer-api/internal/platform/messaging/producers"
	"github.com/segmentio/kafka-go"
)

// ErrUndecodablePayload marks an outbox row that can never be published. The
// relay has already moved it to FAILED_TO_PUBLISH when this is returned.
var ErrUndecodablePayload = errors.New("outbox payload is not a balance event")

// ErrPublishedNotMarked means the event reached Kafka but its row is still
// PENDING. It is not a failed delivery and must not use up an attempt.
var ErrPublishedNotMarked = errors.New("event published but outbox row not marked")

// EventRelay delivers one outbox message to the event stream
type EventRelay interface {
	Relay(ctx context.Context, message *outbox.Message) error
}

// KafkaRelay publishes outbox messages keyed by account id and marks them PROCESSED
type KafkaRelay struct {
	outboxRepo outbox.Repository
	publisher  producers.BalanceEventPublisher
	logger     *slog.Logger
}

func NewKafkaRelay(outboxRepo outbox.Repository, publisher producers.BalanceEventPublisher, logger *slog.Logger) EventRelay {
	return &KafkaRelay{
		outboxRepo: outboxRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Relay publishes first and marks second. A crash in between republishes the
// event, which the statement projection absorbs.
func (r *KafkaRelay) Relay(ctx context.Context, message *outbox.Message) error {
	event, err := message.Event()
	if err != nil {
		r.logger.Error("Failed to decode outbox payload", "outbox_id", message.ID, "error", err)
		if updateErr := r.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			return fmt.Errorf("failed to mark undecodable outbox %d: %w", message.ID, updateErr)
		}
		return fmt.Errorf("%w: outbox %d: %v", ErrUndecodablePayload, message.ID, err)
	}

	logger := r.logger.With("outbox_id", message.ID, "event_id", event.EventID.String())
	if event.CorrelationID != "" {
		logger = logger.With("correlation_id", event.CorrelationID)
	}

	headers := []kafka.Header{
		{Key: "event-type", Value: []byte(event.Type)},
		{Key: "event-id", Value: []byte(event.EventID.String())},
	}
	if event.CorrelationID != "" {
		headers = append(headers, kafka.Header{Key: "correlation-id", Value: []byte(event.CorrelationID)})
	}

	key := strconv.FormatInt(message.AggregateID, 10)
	if err := r.publisher.Publish(ctx, key, message.Payload, headers...); err != nil {
		return fmt.Errorf("publish outbox %d: %w", message.ID, err)
	}

	if err := r.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Event published but outbox row not marked PROCESSED", "error", err)
		return fmt.Errorf("%w: event %s, outbox %d: %w", ErrPublishedNotMarked, event.EventID, message.ID, err)
	}

	logger.Info("Relayed balance event", "type", event.Type, "key", key)
	return nil
}
