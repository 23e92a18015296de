package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/banking-transfer-api/internal/domain/account"
	"github.com/banking-transfer-api/internal/domain/statement"
	"github.com/banking-transfer-api/internal/domain/transaction"
	"github.com/banking-transfer-api/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, acc *account.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*account.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*account.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) LockForUpdate(ctx context.Context, id int64) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, acc *account.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) WithTx(tx pgx.Tx) account.Repository {
	args := m.Called(tx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(account.Repository)
}

type MockStatementRepository struct {
	mock.Mock
}

func (m *MockStatementRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatementRepository) Create(ctx context.Context, entry *statement.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStatementRepository) ListByAccountID(ctx context.Context, accountID int64, limit, offset int) ([]*statement.Entry, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*statement.Entry), args.Error(1)
}

func (m *MockStatementRepository) CountByAccountID(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Transfer(ctx context.Context, amount, sourceAccountID, destinationAccountID int64) (*transaction.Transaction, error) {
	args := m.Called(ctx, amount, sourceAccountID, destinationAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockEngine) Deposit(ctx context.Context, accountID, amount int64) (*account.Account, error) {
	args := m.Called(ctx, accountID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockEngine) Withdraw(ctx context.Context, accountID, amount int64) (*account.Account, error) {
	args := m.Called(ctx, accountID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

type accountServiceMocks struct {
	accounts   *MockAccountRepository
	users      *MockUserRepository
	statements *MockStatementRepository
	engine     *MockEngine
}

func newAccountService() (AccountService, *accountServiceMocks) {
	m := &accountServiceMocks{
		accounts:   new(MockAccountRepository),
		users:      new(MockUserRepository),
		statements: new(MockStatementRepository),
		engine:     new(MockEngine),
	}
	return NewAccountService(slog.Default(), m.accounts, m.users, m.statements, m.engine), m
}

func TestAccountServiceImpl_CreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newAccountService()
		m.accounts.On("Create", ctx, mock.AnythingOfType("*account.Account")).Run(func(args mock.Arguments) {
			args.Get(1).(*account.Account).ID = 11
		}).Return(nil).Once()

		acc, err := svc.CreateAccount(ctx, 3, "Acme Bank", "NL01ACME0001", 10000)

		require.NoError(t, err)
		assert.Equal(t, int64(11), acc.ID)
		assert.Equal(t, int64(3), acc.UserID)
		assert.Equal(t, int64(10000), acc.Balance)
		m.accounts.AssertExpectations(t)
	})

	t.Run("InvalidAccountData", func(t *testing.T) {
		svc, m := newAccountService()

		_, err := svc.CreateAccount(ctx, 3, "Acme Bank", "NL01ACME0001", -1)

		assert.ErrorIs(t, err, account.ErrNegativeInitialFunds)
		m.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DuplicateAccountNumber", func(t *testing.T) {
		svc, m := newAccountService()
		dup := account.ErrDuplicateAccountNumber{BankAccountNumber: "NL01ACME0001"}
		m.accounts.On("Create", ctx, mock.AnythingOfType("*account.Account")).Return(dup).Once()

		acc, err := svc.CreateAccount(ctx, 3, "Acme Bank", "NL01ACME0001", 0)

		assert.Nil(t, acc)
		var dupErr account.ErrDuplicateAccountNumber
		assert.ErrorAs(t, err, &dupErr)
	})
}

func TestAccountServiceImpl_ListAccounts(t *testing.T) {
	ctx := context.Background()
	svc, m := newAccountService()
	page := []*account.Account{{ID: 21}, {ID: 22}}
	m.accounts.On("List", ctx, 10, 20).Return(page, nil).Once()
	m.accounts.On("Count", ctx).Return(int64(22), nil).Once()

	accounts, total, err := svc.ListAccounts(ctx, 3, 10)

	require.NoError(t, err)
	assert.Equal(t, page, accounts)
	assert.Equal(t, int64(22), total)
	m.accounts.AssertExpectations(t)
}

func TestAccountServiceImpl_ListAccountsByUserID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newAccountService()
		m.users.On("GetByID", ctx, int64(4)).Return(&user.User{ID: 4}, nil).Once()
		m.accounts.On("ListByUserID", ctx, int64(4)).Return([]*account.Account{{ID: 1, UserID: 4}}, nil).Once()

		accounts, err := svc.ListAccountsByUserID(ctx, 4)

		require.NoError(t, err)
		assert.Len(t, accounts, 1)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		svc, m := newAccountService()
		m.users.On("GetByID", ctx, int64(4)).Return(nil, user.ErrUserNotFound{UserID: 4}).Once()

		_, err := svc.ListAccountsByUserID(ctx, 4)

		assert.ErrorIs(t, err, user.ErrUserNotFound{})
		m.accounts.AssertNotCalled(t, "ListByUserID", mock.Anything, mock.Anything)
	})
}

func TestAccountServiceImpl_BalanceChanges(t *testing.T) {
	ctx := context.Background()
	svc, m := newAccountService()
	m.engine.On("Deposit", ctx, int64(5), int64(100)).Return(&account.Account{ID: 5, Balance: 100}, nil).Once()
	m.engine.On("Withdraw", ctx, int64(5), int64(500)).Return(nil, account.ErrInsufficientBalance).Once()

	acc, err := svc.Deposit(ctx, 5, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), acc.Balance)

	_, err = svc.Withdraw(ctx, 5, 500)
	assert.ErrorIs(t, err, account.ErrInsufficientBalance)
	m.engine.AssertExpectations(t)
}

func TestAccountServiceImpl_GetStatement(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newAccountService()
		entries := []*statement.Entry{{EventID: "e1", AccountID: 8, Amount: 5, OccurredAt: time.Now()}}
		m.accounts.On("GetByID", ctx, int64(8)).Return(&account.Account{ID: 8}, nil).Once()
		m.statements.On("ListByAccountID", ctx, int64(8), 5, 0).Return(entries, nil).Once()
		m.statements.On("CountByAccountID", ctx, int64(8)).Return(int64(1), nil).Once()

		got, total, err := svc.GetStatement(ctx, 8, 1, 5)

		require.NoError(t, err)
		assert.Equal(t, entries, got)
		assert.Equal(t, int64(1), total)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		svc, m := newAccountService()
		m.accounts.On("GetByID", ctx, int64(8)).Return(nil, account.ErrAccountNotFound{AccountID: 8}).Once()

		_, _, err := svc.GetStatement(ctx, 8, 1, 5)

		assert.ErrorIs(t, err, account.ErrAccountNotFound{AccountID: 8})
		m.statements.AssertNotCalled(t, "ListByAccountID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ProjectionUnavailable", func(t *testing.T) {
		svc, m := newAccountService()
		mongoErr := errors.New("server selection timeout")
		m.accounts.On("GetByID", ctx, int64(8)).Return(&account.Account{ID: 8}, nil).Once()
		m.statements.On("ListByAccountID", ctx, int64(8), 5, 0).Return(nil, mongoErr).Once()

		_, _, err := svc.GetStatement(ctx, 8, 1, 5)

		assert.ErrorIs(t, err, mongoErr)
	})
}
