package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/banking-transfer-api/internal/domain/transaction"
	"github.com/banking-transfer-api/internal/transfer_engine/service"
	"github.com/jackc/pgx/v5"
)

type TransferRecorderImpl struct {
	transactionRepo transaction.Repository
	logger          *slog.Logger
}

func NewTransferRecorder(transactionRepo transaction.Repository, logger *slog.Logger) service.TransferRecorder {
	return &TransferRecorderImpl{
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// Record inserts the transfer and fills in its id and creation time.
func (r *TransferRecorderImpl) Record(ctx context.Context, tx pgx.Tx, txn *transaction.Transaction) error {
	if err := r.transactionRepo.WithTx(tx).Create(ctx, txn); err != nil {
		r.logger.Error("Failed to record transfer",
			"src_acc_id", txn.SourceAccountID,
			"dst_acc_id", txn.DestinationAccountID,
			"error", err,
		)
		return fmt.Errorf("failed to record transfer from %d to %d: %w", txn.SourceAccountID, txn.DestinationAccountID, err)
	}

	r.logger.Debug("Transfer recorded", "txn_id", txn.ID)
	return nil
}
