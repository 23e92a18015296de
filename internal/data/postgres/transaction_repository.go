package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/banking-transfer-api/internal/domain/transaction"
	"github.com/banking-transfer-api/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, amount, source_account_id, destination_account_id, created_at`

// TransactionRepository is the append-only transfer store. It exposes no
// update or delete.
type TransactionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

func NewTransactionRepository(logger *slog.Logger, querier persistence.Querier) transaction.Repository {
	return &TransactionRepository{
		querier: querier,
		logger:  logger,
	}
}

func (r *TransactionRepository) WithTx(tx pgx.Tx) transaction.Repository {
	return &TransactionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create inserts the transfer record. The id and timestamp come from the
// database so they are assigned inside the same unit as the balance writes.
func (r *TransactionRepository) Create(ctx context.Context, txn *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (amount, source_account_id, destination_account_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.querier.QueryRow(ctx, query,
		txn.Amount,
		txn.SourceAccountID,
		txn.DestinationAccountID,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create transaction",
			"source_account_id", txn.SourceAccountID,
			"destination_account_id", txn.DestinationAccountID,
			"error", err,
		)
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	txn, err := scanTransaction(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to get transaction", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return txn, nil
}

func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := r.querier.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list transactions", "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return collectTransactions(rows)
}

func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.querier.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		r.logger.Error("Failed to count transactions", "error", err)
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// ListByAccountID returns transfers where the account is either side, newest first.
func (r *TransactionRepository) ListByAccountID(ctx context.Context, accountID int64, limit, offset int) ([]*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE source_account_id = $1 OR destination_account_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list transactions by account", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to list transactions by account: %w", err)
	}
	return collectTransactions(rows)
}

func (r *TransactionRepository) CountByAccountID(ctx context.Context, accountID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE source_account_id = $1 OR destination_account_id = $1`

	var count int64
	if err := r.querier.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		r.logger.Error("Failed to count transactions by account", "account_id", accountID, "error", err)
		return 0, fmt.Errorf("failed to count transactions by account: %w", err)
	}
	return count, nil
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var txn transaction.Transaction
	if err := row.Scan(&txn.ID, &txn.Amount, &txn.SourceAccountID, &txn.DestinationAccountID, &txn.CreatedAt); err != nil {
		return nil, err
	}
	return &txn, nil
}

func collectTransactions(rows pgx.Rows) ([]*transaction.Transaction, error) {
	defer rows.Close()

	txns := make([]*transaction.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}
