package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/banking-transfer-api/internal/domain/outbox"
	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/banking-transfer-api/internal/transfer_engine/service"
	"github.com/jackc/pgx/v5"
)

type EventRecorderImpl struct {
	outboxRepo outbox.Repository
	logger     *slog.Logger
}

func NewEventRecorder(outboxRepo outbox.Repository, logger *slog.Logger) service.EventRecorder {
	return &EventRecorderImpl{
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

// Record writes the event to the outbox in the caller's transaction. It is
// relayed to the broker only after that transaction commits.
func (r *EventRecorderImpl) Record(ctx context.Context, tx pgx.Tx, event *shared.BalanceEvent) error {
	logger := r.logger
	if event.CorrelationID != "" {
		logger = r.logger.With("correlation_id", event.CorrelationID)
	}

	message, err := outbox.NewMessage(event)
	if err != nil {
		logger.Error("Failed to create new outbox message (marshal payload)", "event_id", event.EventID.String(), "error", err)
		return fmt.Errorf("failed to create outbox message payload for event %s: %w", event.EventID.String(), err)
	}

	if err := r.outboxRepo.WithTx(tx).Create(ctx, message); err != nil {
		logger.Error("Failed to create outbox message", "event_id", event.EventID.String(), "error", err)
		return fmt.Errorf("failed to create outbox message for event %s: %w", event.EventID.String(), err)
	}

	logger.Debug("Outbox message created", "event_id", event.EventID.String(), "outbox_id", message.ID, "type", event.Type)
	return nil
}
