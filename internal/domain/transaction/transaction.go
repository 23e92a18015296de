// Package transaction models the immutable record of a completed transfer.
package transaction

import (
	"errors"
	"time"

	"github.com/banking-transfer-api/internal/domain/money"
)

// ErrSameAccountTransfer is returned when source and destination are the same account.
var ErrSameAccountTransfer = errors.New("source and destination accounts must differ")

// Transaction links a source and a destination account with the amount moved
// between them. It exists only once the transfer has been committed.
type Transaction struct {
	ID                   int64     `json:"id"`
	Amount               int64     `json:"amount"`
	SourceAccountID      int64     `json:"source_account_id"`
	DestinationAccountID int64     `json:"destination_account_id"`
	CreatedAt            time.Time `json:"created_at"`
}

// NewTransfer validates a transfer request and returns the record to insert.
// The id and timestamp are assigned by the store.
func NewTransfer(amount, sourceAccountID, destinationAccountID int64) (*Transaction, error) {
	if err := money.Validate(amount); err != nil {
		return nil, err
	}
	if sourceAccountID == destinationAccountID {
		return nil, ErrSameAccountTransfer
	}

	return &Transaction{
		Amount:               amount,
		SourceAccountID:      sourceAccountID,
		DestinationAccountID: destinationAccountID,
	}, nil
}

// LockOrder returns the two account ids in ascending order. Every unit that
// locks both accounts must acquire them in this order.
func (t *Transaction) LockOrder() [2]int64 {
	if t.SourceAccountID < t.DestinationAccountID {
		return [2]int64{t.SourceAccountID, t.DestinationAccountID}
	}
	return [2]int64{t.DestinationAccountID, t.SourceAccountID}
}
