package account

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// Repository defines account persistence operations
type Repository interface {
	// Create inserts the account and fills in its id.
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	List(ctx context.Context, limit, offset int) ([]*Account, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Account, error)
	Count(ctx context.Context) (int64, error)

	// LockForUpdate reads the account and holds its row lock until the
	// surrounding transaction ends. Only meaningful on a repository bound
	// with WithTx.
	LockForUpdate(ctx context.Context, id int64) (*Account, error)

	// UpdateBalance writes account.Balance and account.Version, guarded by
	// the version the account was read at.
	UpdateBalance(ctx context.Context, account *Account) error

	WithTx(tx pgx.Tx) Repository
}

// ErrConcurrentModification indicates the row changed after it was read.
type ErrConcurrentModification struct {
	AccountID int64
}

func (e ErrConcurrentModification) Error() string {
	return "concurrent modification detected for account: " + strconv.FormatInt(e.AccountID, 10)
}

// ErrAccountNotFound indicates a missing account.
type ErrAccountNotFound struct {
	AccountID int64
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + strconv.FormatInt(e.AccountID, 10)
}

// Is matches any ErrAccountNotFound when the target carries no id.
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	return t.AccountID == 0 || t.AccountID == e.AccountID
}

// ErrDuplicateAccountNumber indicates a bank account number uniqueness violation.
type ErrDuplicateAccountNumber struct {
	BankAccountNumber string
}

func (e ErrDuplicateAccountNumber) Error() string {
	return "account with bank account number already exists: " + e.BankAccountNumber
}

// ErrOwnerNotFound indicates the referenced user does not exist.
type ErrOwnerNotFound struct {
	UserID int64
}

func (e ErrOwnerNotFound) Error() string {
	return "account owner not found: " + strconv.FormatInt(e.UserID, 10)
}
