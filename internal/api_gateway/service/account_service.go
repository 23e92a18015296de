package service

import (
	"context"
	"log/slog"

	"github.com/banking-transfer-api/internal/domain/account"
	"github.com/banking-transfer-api/internal/domain/statement"
	"github.com/banking-transfer-api/internal/domain/user"
	engine "github.com/banking-transfer-api/internal/transfer_engine/service"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accountRepo   account.Repository
	userRepo      user.Repository
	statementRepo statement.Repository
	engine        engine.Engine
	logger        *slog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	logger *slog.Logger,
	accountRepo account.Repository,
	userRepo user.Repository,
	statementRepo statement.Repository,
	transferEngine engine.Engine,
) AccountService {
	return &AccountServiceImpl{
		accountRepo:   accountRepo,
		userRepo:      userRepo,
		statementRepo: statementRepo,
		engine:        transferEngine,
		logger:        logger,
	}
}

func (s *AccountServiceImpl) CreateAccount(ctx context.Context, userID int64, bankName, bankAccountNumber string, initialBalance int64) (*account.Account, error) {
	acc, err := account.NewAccount(userID, bankName, bankAccountNumber, initialBalance)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}

	s.logger.Info("Account created", "account_id", acc.ID, "user_id", userID)
	return acc, nil
}

// GetAccountByID retrieves an account by its ID, returns ErrAccountNotFound if not found
func (s *AccountServiceImpl) GetAccountByID(ctx context.Context, id int64) (*account.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

func (s *AccountServiceImpl) ListAccounts(ctx context.Context, page, perPage int) ([]*account.Account, int64, error) {
	accounts, err := s.accountRepo.List(ctx, perPage, pageOffset(page, perPage))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.accountRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

func (s *AccountServiceImpl) ListAccountsByUserID(ctx context.Context, userID int64) ([]*account.Account, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.accountRepo.ListByUserID(ctx, userID)
}

func (s *AccountServiceImpl) Deposit(ctx context.Context, accountID, amount int64) (*account.Account, error) {
	return s.engine.Deposit(ctx, accountID, amount)
}

func (s *AccountServiceImpl) Withdraw(ctx context.Context, accountID, amount int64) (*account.Account, error) {
	return s.engine.Withdraw(ctx, accountID, amount)
}

// GetStatement checks the account exists before reading the projection, so an
// unknown id is a 404 rather than an empty statement.
func (s *AccountServiceImpl) GetStatement(ctx context.Context, accountID int64, page, perPage int) ([]*statement.Entry, int64, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, 0, err
	}

	entries, err := s.statementRepo.ListByAccountID(ctx, accountID, perPage, pageOffset(page, perPage))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.statementRepo.CountByAccountID(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
