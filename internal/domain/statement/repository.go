package statement

import (
	"context"
	"fmt"
)

// Repository stores statement entries. Create must be idempotent per
// (event id, account id) because events can be delivered more than once.
type Repository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, entry *Entry) error
	ListByAccountID(ctx context.Context, accountID int64, limit, offset int) ([]*Entry, error)
	CountByAccountID(ctx context.Context, accountID int64) (int64, error)
}

// ErrDuplicateEntry indicates the event was already projected for the account.
type ErrDuplicateEntry struct {
	EventID   string
	AccountID int64
}

func (e ErrDuplicateEntry) Error() string {
	return fmt.Sprintf("duplicate statement entry: event %s account %d", e.EventID, e.AccountID)
}

// Is matches any ErrDuplicateEntry when the target carries no event id.
func (e ErrDuplicateEntry) Is(target error) bool {
	t, ok := target.(ErrDuplicateEntry)
	if !ok {
		return false
	}
	return t.EventID == "" || (t.EventID == e.EventID && t.AccountID == e.AccountID)
}
