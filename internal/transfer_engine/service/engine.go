package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/banking-transfer-api/internal/domain/account"
	"github.com/banking-transfer-api/internal/domain/money"
	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/banking-transfer-api/internal/domain/transaction"
	"github.com/banking-transfer-api/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

type EngineImpl struct {
	db               persistence.TxStarter
	accountManager   AccountManager
	transferRecorder TransferRecorder
	eventRecorder    EventRecorder
	logger           *slog.Logger
}

func NewEngine(
	db persistence.TxStarter,
	accountManager AccountManager,
	transferRecorder TransferRecorder,
	eventRecorder EventRecorder,
	logger *slog.Logger,
) Engine {
	return &EngineImpl{
		db:               db,
		accountManager:   accountManager,
		transferRecorder: transferRecorder,
		eventRecorder:    eventRecorder,
		logger:           logger,
	}
}

func (e *EngineImpl) Transfer(ctx context.Context, amount, sourceAccountID, destinationAccountID int64) (*transaction.Transaction, error) {
	logger := e.requestLogger(ctx).With(
		"operation", "transfer",
		"source_account_id", sourceAccountID,
		"destination_account_id", destinationAccountID,
		"amount", amount,
	)

	txn, err := transaction.NewTransfer(amount, sourceAccountID, destinationAccountID)
	if err != nil {
		logger.Warn("Transfer rejected", "reason", err.Error())
		return nil, err
	}

	lockOrder := txn.LockOrder()
	err = persistence.RunInTx(ctx, e.db, persistence.ReadCommittedTx, func(tx pgx.Tx) error {
		locked, err := e.accountManager.LockAccounts(ctx, tx, lockOrder[:]...)
		if err != nil {
			return err
		}
		source, destination := locked[sourceAccountID], locked[destinationAccountID]

		if err := source.Withdraw(amount); err != nil {
			return err
		}
		if err := destination.Deposit(amount); err != nil {
			return err
		}
		if err := e.accountManager.SaveBalances(ctx, tx, source, destination); err != nil {
			return err
		}
		if err := e.transferRecorder.Record(ctx, tx, txn); err != nil {
			return err
		}
		return e.eventRecorder.Record(ctx, tx, newTransferEvent(ctx, txn, source, destination))
	})
	if err != nil {
		return nil, e.fail(logger, "transfer", err)
	}

	logger.Info("Transfer committed", "transaction_id", txn.ID)
	return txn, nil
}

func (e *EngineImpl) Deposit(ctx context.Context, accountID, amount int64) (*account.Account, error) {
	return e.mutateBalance(ctx, "deposit", accountID, amount, shared.MovementDeposit, (*account.Account).Deposit)
}

func (e *EngineImpl) Withdraw(ctx context.Context, accountID, amount int64) (*account.Account, error) {
	return e.mutateBalance(ctx, "withdraw", accountID, amount, shared.MovementWithdrawal, (*account.Account).Withdraw)
}

// mutateBalance runs the single account read-check-write unit shared by
// deposits and withdrawals.
func (e *EngineImpl) mutateBalance(
	ctx context.Context,
	op string,
	accountID, amount int64,
	movement shared.MovementKind,
	apply func(*account.Account, int64) error,
) (*account.Account, error) {
	logger := e.requestLogger(ctx).With("operation", op, "account_id", accountID, "amount", amount)

	if err := money.Validate(amount); err != nil {
		logger.Warn("Balance change rejected", "reason", err.Error())
		return nil, err
	}

	var updated *account.Account
	err := persistence.RunInTx(ctx, e.db, persistence.ReadCommittedTx, func(tx pgx.Tx) error {
		locked, err := e.accountManager.LockAccounts(ctx, tx, accountID)
		if err != nil {
			return err
		}
		acc := locked[accountID]

		if err := apply(acc, amount); err != nil {
			return err
		}
		if err := e.accountManager.SaveBalances(ctx, tx, acc); err != nil {
			return err
		}
		if err := e.eventRecorder.Record(ctx, tx, newSingleAccountEvent(ctx, acc, movement, amount)); err != nil {
			return err
		}
		updated = acc
		return nil
	})
	if err != nil {
		return nil, e.fail(logger, op, err)
	}

	logger.Info("Balance change committed", "balance", updated.Balance, "version", updated.Version)
	return updated, nil
}

// fail passes domain rejections through and turns everything else into a
// StorageError.
func (e *EngineImpl) fail(logger *slog.Logger, op string, err error) error {
	if isRejection(err) {
		logger.Warn("Operation rejected", "reason", err.Error())
		return err
	}

	logger.Error("Operation aborted by storage", "error", err)
	return shared.NewStorageError(op, err)
}

func isRejection(err error) bool {
	return errors.Is(err, money.ErrInvalidAmount) ||
		errors.Is(err, transaction.ErrSameAccountTransfer) ||
		errors.Is(err, account.ErrInsufficientBalance) ||
		errors.Is(err, account.ErrAccountNotFound{})
}

func (e *EngineImpl) requestLogger(ctx context.Context) *slog.Logger {
	if id := shared.CorrelationIDFrom(ctx); id != "" {
		return e.logger.With("correlation_id", id)
	}
	return e.logger
}
