package components

import (
	"log/slog"

	"github.com/banking-transfer-api/internal/domain/account"
	"github.com/banking-transfer-api/internal/domain/outbox"
	"github.com/banking-transfer-api/internal/domain/transaction"
	"github.com/banking-transfer-api/internal/platform/persistence"
	"github.com/banking-transfer-api/internal/transfer_engine/service"
)

// CreateEngine wires the transfer engine with its components.
func CreateEngine(
	db persistence.TxStarter,
	accountRepo account.Repository,
	transactionRepo transaction.Repository,
	outboxRepo outbox.Repository,
	logger *slog.Logger,
) service.Engine {
	componentLogger := logger.With("component", "transfer_engine")

	return service.NewEngine(
		db,
		NewAccountManager(accountRepo, componentLogger),
		NewTransferRecorder(transactionRepo, componentLogger),
		NewEventRecorder(outboxRepo, componentLogger),
		logger,
	)
}
