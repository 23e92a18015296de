package service

import (
	"context"

	"github.com/banking-transfer-api/internal/domain/account"
	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/banking-transfer-api/internal/domain/transaction"
	"github.com/google/uuid"
)

func newTransferEvent(ctx context.Context, txn *transaction.Transaction, source, destination *account.Account) *shared.BalanceEvent {
	txnID := txn.ID
	sourceID, destinationID := source.ID, destination.ID

	return &shared.BalanceEvent{
		EventID:       uuid.New(),
		Type:          shared.EventTypeTransferCompleted,
		TransactionID: &txnID,
		Movements: []shared.BalanceMovement{
			{
				AccountID:             sourceID,
				Kind:                  shared.MovementTransferOut,
				Amount:                txn.Amount,
				BalanceAfter:          source.Balance,
				CounterpartyAccountID: &destinationID,
			},
			{
				AccountID:             destinationID,
				Kind:                  shared.MovementTransferIn,
				Amount:                txn.Amount,
				BalanceAfter:          destination.Balance,
				CounterpartyAccountID: &sourceID,
			},
		},
		CorrelationID: shared.CorrelationIDFrom(ctx),
		OccurredAt:    txn.CreatedAt,
	}
}

func newSingleAccountEvent(ctx context.Context, acc *account.Account, movement shared.MovementKind, amount int64) *shared.BalanceEvent {
	eventType := shared.EventTypeDepositCompleted
	if movement == shared.MovementWithdrawal {
		eventType = shared.EventTypeWithdrawalCompleted
	}

	return &shared.BalanceEvent{
		EventID: uuid.New(),
		Type:    eventType,
		Movements: []shared.BalanceMovement{
			{AccountID: acc.ID, Kind: movement, Amount: amount, BalanceAfter: acc.Balance},
		},
		CorrelationID: shared.CorrelationIDFrom(ctx),
		OccurredAt:    acc.UpdatedAt,
	}
}
