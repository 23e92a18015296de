// Package statement is the per-account read model built from balance events.
package statement

import (
	"time"

	"github.com/banking-transfer-api/internal/domain/shared"
)

// Entry is one line of an account statement.
type Entry struct {
	EventID               string              `json:"event_id" bson:"event_id"`
	EventType             shared.EventType    `json:"event_type" bson:"event_type"`
	AccountID             int64               `json:"account_id" bson:"account_id"`
	Movement              shared.MovementKind `json:"movement" bson:"movement"`
	Amount                int64               `json:"amount" bson:"amount"`
	BalanceAfter          int64               `json:"balance_after" bson:"balance_after"`
	CounterpartyAccountID *int64              `json:"counterparty_account_id,omitempty" bson:"counterparty_account_id,omitempty"`
	TransactionID         *int64              `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	CorrelationID         string              `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	OccurredAt            time.Time           `json:"occurred_at" bson:"occurred_at"`
	RecordedAt            time.Time           `json:"recorded_at" bson:"recorded_at"`
}

// EntriesFromEvent expands an event into one entry per affected account.
func EntriesFromEvent(event *shared.BalanceEvent, recordedAt time.Time) []*Entry {
	entries := make([]*Entry, 0, len(event.Movements))
	for _, m := range event.Movements {
		entries = append(entries, &Entry{
			EventID:               event.EventID.String(),
			EventType:             event.Type,
			AccountID:             m.AccountID,
			Movement:              m.Kind,
			Amount:                m.Amount,
			BalanceAfter:          m.BalanceAfter,
			CounterpartyAccountID: m.CounterpartyAccountID,
			TransactionID:         event.TransactionID,
			CorrelationID:         event.CorrelationID,
			OccurredAt:            event.OccurredAt,
			RecordedAt:            recordedAt,
		})
	}
	return entries
}
