package service

import (
	"context"

	"github.com/banking-transfer-api/internal/domain/shared"
)

// ProjectionService applies a balance event to the statement read model.
// Applying the same event twice must leave the statement unchanged.
type ProjectionService interface {
	Project(ctx context.Context, event *shared.BalanceEvent) error
}
