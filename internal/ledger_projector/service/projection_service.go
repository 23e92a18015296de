package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/banking-transfer-api/internal/domain/statement"
)

// StatementProjector writes one statement entry per movement of an event
type StatementProjector struct {
	statementRepo statement.Repository
	logger        *slog.Logger
	now           func() time.Time
}

func NewStatementProjector(statementRepo statement.Repository, logger *slog.Logger) *StatementProjector {
	return &StatementProjector{
		statementRepo: statementRepo,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Project skips entries that already exist, so a redelivered event is a no-op
// and a partially projected transfer is completed on the next delivery.
func (p *StatementProjector) Project(ctx context.Context, event *shared.BalanceEvent) error {
	logger := p.logger.With("event_id", event.EventID.String(), "type", event.Type)
	if event.CorrelationID != "" {
		logger = logger.With("correlation_id", event.CorrelationID)
	}

	written := 0
	for _, entry := range statement.EntriesFromEvent(event, p.now()) {
		err := p.statementRepo.Create(ctx, entry)
		if errors.Is(err, statement.ErrDuplicateEntry{}) {
			logger.Debug("Statement entry already projected", "account_id", entry.AccountID)
			continue
		}
		if err != nil {
			return fmt.Errorf("project event %s for account %d: %w", event.EventID, entry.AccountID, err)
		}
		written++
	}

	logger.Info("Projected balance event", "entries_written", written)
	return nil
}
