package shared

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType names a committed balance change.
type EventType string

const (
	EventTypeTransferCompleted   EventType = "transfer.completed"
	EventTypeDepositCompleted    EventType = "deposit.completed"
	EventTypeWithdrawalCompleted EventType = "withdrawal.completed"
)

// MovementKind describes how one account was affected by an event.
type MovementKind string

const (
	MovementDeposit     MovementKind = "DEPOSIT"
	MovementWithdrawal  MovementKind = "WITHDRAWAL"
	MovementTransferOut MovementKind = "TRANSFER_OUT"
	MovementTransferIn  MovementKind = "TRANSFER_IN"
)

// OutboxStatus defines message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)

var ErrInvalidEvent = errors.New("invalid balance event")

// BalanceMovement is the effect of an event on a single account.
type BalanceMovement struct {
	AccountID             int64        `json:"account_id"`
	Kind                  MovementKind `json:"kind"`
	Amount                int64        `json:"amount"`
	BalanceAfter          int64        `json:"balance_after"`
	CounterpartyAccountID *int64       `json:"counterparty_account_id,omitempty"`
}

// BalanceEvent is written to the outbox inside the unit that changed the
// balances, and later relayed to the balance event topic.
type BalanceEvent struct {
	EventID       uuid.UUID         `json:"event_id"`
	Type          EventType         `json:"type"`
	TransactionID *int64            `json:"transaction_id,omitempty"`
	Movements     []BalanceMovement `json:"movements"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

// Validate checks that a decoded event can be projected.
func (e *BalanceEvent) Validate() error {
	if e.EventID == uuid.Nil {
		return fmt.Errorf("%w: missing event id", ErrInvalidEvent)
	}

	want := 1
	switch e.Type {
	case EventTypeDepositCompleted, EventTypeWithdrawalCompleted:
	case EventTypeTransferCompleted:
		want = 2
		if e.TransactionID == nil {
			return fmt.Errorf("%w: transfer without transaction id", ErrInvalidEvent)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}

	if len(e.Movements) != want {
		return fmt.Errorf("%w: %s needs %d movements, got %d", ErrInvalidEvent, e.Type, want, len(e.Movements))
	}
	for _, m := range e.Movements {
		if m.AccountID <= 0 || m.Amount <= 0 || m.BalanceAfter < 0 {
			return fmt.Errorf("%w: malformed movement for account %d", ErrInvalidEvent, m.AccountID)
		}
	}
	return nil
}
