package service

import (
	"context"

	"github.com/banking-transfer-api/internal/domain/account"
	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/banking-transfer-api/internal/domain/transaction"
	"github.com/jackc/pgx/v5"
)

// Engine moves money. Each call is one atomic unit: either every effect is
// committed or none is visible.
//
// Errors are one of money.ErrInvalidAmount, transaction.ErrSameAccountTransfer,
// account.ErrAccountNotFound, account.ErrInsufficientBalance or
// *shared.StorageError. Storage errors are never retried here.
type Engine interface {
	// Transfer debits source, credits destination and records the transfer.
	Transfer(ctx context.Context, amount, sourceAccountID, destinationAccountID int64) (*transaction.Transaction, error)

	// Deposit credits the account and returns it with its new balance.
	Deposit(ctx context.Context, accountID, amount int64) (*account.Account, error)

	// Withdraw debits the account and returns it with its new balance.
	Withdraw(ctx context.Context, accountID, amount int64) (*account.Account, error)
}

// AccountManager locks and writes account rows inside the engine's unit.
type AccountManager interface {
	// LockAccounts row-locks every id in ascending order and returns them by id.
	LockAccounts(ctx context.Context, tx pgx.Tx, ids ...int64) (map[int64]*account.Account, error)
	SaveBalances(ctx context.Context, tx pgx.Tx, accounts ...*account.Account) error
}

// TransferRecorder appends the transfer record to the ledger.
type TransferRecorder interface {
	Record(ctx context.Context, tx pgx.Tx, txn *transaction.Transaction) error
}

// EventRecorder stores the balance event in the outbox.
type EventRecorder interface {
	Record(ctx context.Context, tx pgx.Tx, event *shared.BalanceEvent) error
}
