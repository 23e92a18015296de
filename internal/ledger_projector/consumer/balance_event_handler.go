package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/banking-transfer-api/internal/ledger_projector/service"
	"github.com/banking-transfer-api/internal/platform/messaging/producers"
)

// BalanceEventHandler decodes balance events from Kafka and projects them
type BalanceEventHandler struct {
	projection service.ProjectionService
	dlq        producers.DeadLetterPublisher
	logger     *slog.Logger
}

func NewBalanceEventHandler(
	logger *slog.Logger,
	projection service.ProjectionService,
	dlq producers.DeadLetterPublisher,
) *BalanceEventHandler {
	return &BalanceEventHandler{
		projection: projection,
		dlq:        dlq,
		logger:     logger,
	}
}

// HandleMessage returns nil when the offset may be committed. Events that can
// never be projected are parked in the DLQ; projection failures are returned
// and the consumer retries the same message before fetching the next one.
func (h *BalanceEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var event shared.BalanceEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return h.deadLetter(ctx, key, value, fmt.Errorf("%w: %v", shared.ErrInvalidEvent, err))
	}
	if err := event.Validate(); err != nil {
		return h.deadLetter(ctx, key, value, err)
	}

	logger := h.logger.With("event_id", event.EventID.String())
	if event.CorrelationID != "" {
		logger = logger.With("correlation_id", event.CorrelationID)
	}

	if err := h.projection.Project(ctx, &event); err != nil {
		logger.Error("Failed to project balance event", "error", err)
		return fmt.Errorf("projecting event %s failed: %w", event.EventID, err)
	}
	return nil
}

func (h *BalanceEventHandler) deadLetter(ctx context.Context, key, value []byte, reason error) error {
	h.logger.Error("Unprocessable balance event", "message_key", string(key), "error", reason)

	if dlqErr := h.dlq.PublishToDLQ(ctx, string(key), value, reason.Error()); dlqErr != nil {
		h.logger.Error("Failed to publish message to DLQ", "message_key", string(key), "dlq_error", dlqErr)
		return fmt.Errorf("dead letter %q: %w", string(key), dlqErr)
	}
	return nil
}
