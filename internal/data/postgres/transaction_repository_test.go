package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/banking-transfer-api/internal/domain/transaction"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transactionColumnNames = []string{"id", "amount", "source_account_id", "destination_account_id", "created_at"}

func TestTransactionRepository_Create(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &TransactionRepository{querier: mock, logger: newTestLogger()}
	query := `INSERT INTO transactions \(amount, source_account_id, destination_account_id\)\s+VALUES \(\$1, \$2, \$3\)\s+RETURNING id, created_at`
	createdAt := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		txn := &transaction.Transaction{Amount: 200, SourceAccountID: 1, DestinationAccountID: 2}
		mock.ExpectQuery(query).
			WithArgs(int64(200), int64(1), int64(2)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(9), createdAt))

		require.NoError(t, repo.Create(ctx, txn))
		assert.Equal(t, int64(9), txn.ID)
		assert.Equal(t, createdAt, txn.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		txn := &transaction.Transaction{Amount: 200, SourceAccountID: 1, DestinationAccountID: 2}
		expectedErr := errors.New("fk violation")
		mock.ExpectQuery(query).WithArgs(int64(200), int64(1), int64(2)).WillReturnError(expectedErr)

		err := repo.Create(ctx, txn)
		assert.ErrorIs(t, err, expectedErr)
		assert.Zero(t, txn.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &TransactionRepository{querier: mock, logger: newTestLogger()}
	query := regexp.QuoteMeta(`SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`)
	createdAt := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(9)).
			WillReturnRows(pgxmock.NewRows(transactionColumnNames).AddRow(int64(9), int64(200), int64(1), int64(2), createdAt))

		txn, err := repo.GetByID(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, &transaction.Transaction{ID: 9, Amount: 200, SourceAccountID: 1, DestinationAccountID: 2, CreatedAt: createdAt}, txn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(10)).WillReturnError(pgx.ErrNoRows)

		txn, err := repo.GetByID(ctx, 10)
		assert.Nil(t, txn)
		assert.ErrorIs(t, err, transaction.ErrTransactionNotFound{TransactionID: 10})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_ListByAccountID(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &TransactionRepository{querier: mock, logger: newTestLogger()}
	createdAt := time.Now().UTC()

	rows := pgxmock.NewRows(transactionColumnNames).
		AddRow(int64(5), int64(300), int64(2), int64(1), createdAt).
		AddRow(int64(4), int64(200), int64(1), int64(2), createdAt)
	mock.ExpectQuery(`WHERE source_account_id = \$1 OR destination_account_id = \$1\s+ORDER BY id DESC\s+LIMIT \$2 OFFSET \$3`).
		WithArgs(int64(1), 10, 0).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM transactions WHERE source_account_id = $1 OR destination_account_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	txns, err := repo.ListByAccountID(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	for _, txn := range txns {
		assert.True(t, txn.SourceAccountID == 1 || txn.DestinationAccountID == 1)
	}

	count, err := repo.CountByAccountID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_List(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &TransactionRepository{querier: mock, logger: newTestLogger()}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM transactions ORDER BY id DESC LIMIT $1 OFFSET $2`)).
		WithArgs(20, 40).
		WillReturnError(errors.New("conn closed"))

	txns, err := repo.List(ctx, 20, 40)
	assert.Nil(t, txns)
	assert.Contains(t, err.Error(), "failed to list transactions")
	assert.NoError(t, mock.ExpectationsWereMet())
}
