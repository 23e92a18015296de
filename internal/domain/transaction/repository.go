package transaction

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// Repository is the append-only store of completed transfers.
type Repository interface {
	// Create inserts the record and fills in its id and creation time.
	Create(ctx context.Context, txn *Transaction) error
	GetByID(ctx context.Context, id int64) (*Transaction, error)
	List(ctx context.Context, limit, offset int) ([]*Transaction, error)
	Count(ctx context.Context) (int64, error)
	ListByAccountID(ctx context.Context, accountID int64, limit, offset int) ([]*Transaction, error)
	CountByAccountID(ctx context.Context, accountID int64) (int64, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrTransactionNotFound indicates a missing transfer record.
type ErrTransactionNotFound struct {
	TransactionID int64
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + strconv.FormatInt(e.TransactionID, 10)
}

// Is matches any ErrTransactionNotFound when the target carries no id.
func (e ErrTransactionNotFound) Is(target error) bool {
	t, ok := target.(ErrTransactionNotFound)
	if !ok {
		return false
	}
	return t.TransactionID == 0 || t.TransactionID == e.TransactionID
}
