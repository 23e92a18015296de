package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/banking-transfer-api/internal/domain/account"
	"github.com/banking-transfer-api/internal/transfer_engine/service"
	"github.com/jackc/pgx/v5"
)

// AccountManagerImpl implements the AccountManager interface
type AccountManagerImpl struct {
	accountRepo account.Repository
	logger      *slog.Logger
}

// NewAccountManager creates a new AccountManagerImpl
func NewAccountManager(accountRepo account.Repository, logger *slog.Logger) service.AccountManager {
	return &AccountManagerImpl{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// LockAccounts takes the row lock of every account in ascending id order, so
// two units touching the same pair always queue on the same row first.
func (m *AccountManagerImpl) LockAccounts(ctx context.Context, tx pgx.Tx, ids ...int64) (map[int64]*account.Account, error) {
	ordered := slices.Clone(ids)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	accountRepoTx := m.accountRepo.WithTx(tx)
	locked := make(map[int64]*account.Account, len(ordered))

	for _, id := range ordered {
		acc, err := accountRepoTx.LockForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound{AccountID: id}) {
				m.logger.Warn("Account not found for lock", "acc_id", id)
				return nil, err
			}
			m.logger.Error("Failed to lock account", "acc_id", id, "error", err)
			return nil, fmt.Errorf("failed to lock account %d: %w", id, err)
		}
		m.logger.Debug("Account locked", "acc_id", acc.ID, "bal", acc.Balance, "ver", acc.Version)
		locked[id] = acc
	}

	return locked, nil
}

// SaveBalances persists the in-memory balances of accounts locked earlier in
// the same transaction.
func (m *AccountManagerImpl) SaveBalances(ctx context.Context, tx pgx.Tx, accounts ...*account.Account) error {
	accountRepoTx := m.accountRepo.WithTx(tx)

	for _, acc := range accounts {
		if err := accountRepoTx.UpdateBalance(ctx, acc); err != nil {
			if errors.Is(err, account.ErrConcurrentModification{AccountID: acc.ID}) {
				m.logger.Warn("Concurrent modification on account update", "acc_id", acc.ID)
			} else {
				m.logger.Error("Failed to update account balance", "acc_id", acc.ID, "error", err)
			}
			return err
		}
		m.logger.Debug("Account balance saved", "acc_id", acc.ID, "new_bal", acc.Balance, "new_ver", acc.Version)
	}

	return nil
}
