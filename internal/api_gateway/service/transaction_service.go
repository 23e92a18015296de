package service

import (
	"context"
	"log/slog"

	"github.com/banking-transfer-api/internal/domain/account"
	"github.com/banking-transfer-api/internal/domain/transaction"
	engine "github.com/banking-transfer-api/internal/transfer_engine/service"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	transactionRepo transaction.Repository
	accountRepo     account.Repository
	engine          engine.Engine
	logger          *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	logger *slog.Logger,
	transactionRepo transaction.Repository,
	accountRepo account.Repository,
	transferEngine engine.Engine,
) TransactionService {
	return &TransactionServiceImpl{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		engine:          transferEngine,
		logger:          logger,
	}
}

// Transfer runs synchronously; the caller gets the committed record or the reason it was rejected.
func (s *TransactionServiceImpl) Transfer(ctx context.Context, amount, sourceAccountID, destinationAccountID int64) (*transaction.Transaction, error) {
	return s.engine.Transfer(ctx, amount, sourceAccountID, destinationAccountID)
}

func (s *TransactionServiceImpl) GetTransactionByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, id)
}

func (s *TransactionServiceImpl) ListTransactions(ctx context.Context, page, perPage int) ([]*transaction.Transaction, int64, error) {
	txns, err := s.transactionRepo.List(ctx, perPage, pageOffset(page, perPage))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.transactionRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return txns, total, nil
}

// GetTransactionsByAccountID retrieves paginated list of transfers for an account
// Returns entries, total count, and any error
func (s *TransactionServiceImpl) GetTransactionsByAccountID(ctx context.Context, accountID int64, page, perPage int) ([]*transaction.Transaction, int64, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, 0, err
	}

	txns, err := s.transactionRepo.ListByAccountID(ctx, accountID, perPage, pageOffset(page, perPage))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.transactionRepo.CountByAccountID(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}

	return txns, total, nil
}
