package outbox_poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/banking-transfer-api/internal/config"
	"github.com/banking-transfer-api/internal/domain/outbox"
	"github.com/banking-transfer-api/internal/domain/shared"
)

// Poller relays pending outbox messages in id order
type Poller struct {
	outboxRepo       outbox.Repository
	relay            EventRelay
	logger           *slog.Logger
	pollInterval     time.Duration
	batchSize        int
	maxRetryAttempts int
}

func NewPoller(
	cfg *config.OutboxConfig,
	outboxRepo outbox.Repository,
	relay EventRelay,
	logger *slog.Logger,
) *Poller {
	return &Poller{
		outboxRepo:       outboxRepo,
		relay:            relay,
		logger:           logger,
		pollInterval:     cfg.PollingInterval,
		batchSize:        cfg.BatchSize,
		maxRetryAttempts: cfg.MaxRetryAttempts,
	}
}

// Start begins polling until context is canceled
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Starting outbox poller",
		"poll_interval", p.pollInterval.String(),
		"batch_size", p.batchSize,
		"max_retry_attempts", p.maxRetryAttempts,
	)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Outbox poller stopping")
			return
		case <-ticker.C:
			if err := p.processPendingMessages(ctx); err != nil {
				p.logger.Error("Error during batch processing of pending outbox messages", "error", err)
			}
		}
	}
}

// processPendingMessages stops at the first retryable failure so that later
// events of the same account are not published ahead of it.
func (p *Poller) processPendingMessages(ctx context.Context) error {
	messages, err := p.outboxRepo.GetPending(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending outbox messages: %w", err)
	}

	if len(messages) == 0 {
		return nil
	}

	p.logger.Debug("Fetched pending outbox messages", "count", len(messages))

	for _, msg := range messages {
		err := p.relay.Relay(ctx, msg)
		if err == nil {
			continue
		}
		if errors.Is(err, ErrUndecodablePayload) {
			p.logger.Warn("Skipping undecodable outbox message", "outbox_id", msg.ID, "error", err)
			continue
		}
		// Delivered already; the row is picked up again on the next poll and
		// the duplicate is absorbed by the statement projection.
		if errors.Is(err, ErrPublishedNotMarked) {
			return fmt.Errorf("outbox %d left pending after publish: %w", msg.ID, err)
		}

		p.logger.Error("Failed to relay outbox message",
			"outbox_id", msg.ID, "event_id", msg.EventID.String(), "current_attempts", msg.Attempts, "error", err,
		)

		if errInc := p.outboxRepo.IncrementAttempts(ctx, msg.ID); errInc != nil {
			return fmt.Errorf("failed to increment attempts for outbox %d: %w", msg.ID, errInc)
		}

		if msg.Attempts+1 < p.maxRetryAttempts {
			return nil
		}

		p.logger.Warn("Max retry attempts reached for outbox message, marking as FAILED_TO_PUBLISH",
			"outbox_id", msg.ID, "event_id", msg.EventID.String(), "attempts_made", msg.Attempts+1,
		)
		if errUpdate := p.outboxRepo.UpdateStatus(ctx, msg.ID, shared.OutboxStatusFailedToPublish); errUpdate != nil {
			return fmt.Errorf("failed to mark outbox %d as FAILED_TO_PUBLISH: %w", msg.ID, errUpdate)
		}
	}
	return nil
}
