package outbox

import (
	"context"
	"strconv"

	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/jackc/pgx/v5"
)

// Repository stores balance events next to the balance change that produced
// them. Create runs inside the engine's unit via WithTx; the other methods are
// used by the outbox poller.
type Repository interface {
	Create(ctx context.Context, message *Message) error
	GetPending(ctx context.Context, limit int) ([]*Message, error)
	UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error
	IncrementAttempts(ctx context.Context, id int64) error
	WithTx(tx pgx.Tx) Repository
}

// ErrMessageNotFound is returned when a status or attempt update matches no row.
type ErrMessageNotFound struct {
	ID int64
}

func (e ErrMessageNotFound) Error() string {
	return "outbox message not found: " + strconv.FormatInt(e.ID, 10)
}
