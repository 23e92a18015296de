package service

import (
	"context"
	"errors"
	"time"

	"github.com/banking-transfer-api/internal/domain/account"
	"github.com/banking-transfer-api/internal/domain/statement"
	"github.com/banking-transfer-api/internal/domain/transaction"
	"github.com/banking-transfer-api/internal/domain/user"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Token is the result of a successful login.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *user.User
}

// UserService defines the interface for user and authentication operations
type UserService interface {
	// Register creates a user with a hashed password.
	// Returns user.ErrDuplicateEmail if the email is taken
	Register(ctx context.Context, name, email, password string, profile user.Profile) (*user.User, error)

	// Login checks the credentials and issues an access token.
	// Returns ErrInvalidCredentials on any mismatch
	Login(ctx context.Context, email, password string) (*Token, error)

	GetUserByID(ctx context.Context, id int64) (*user.User, error)
	ListUsers(ctx context.Context, page, perPage int) ([]*user.User, int64, error)
}

// AccountService defines the interface for account operations
type AccountService interface {
	// CreateAccount opens an account for the user with the given starting balance.
	// Returns ErrDuplicateAccountNumber if the bank account number is taken
	CreateAccount(ctx context.Context, userID int64, bankName, bankAccountNumber string, initialBalance int64) (*account.Account, error)

	// GetAccountByID retrieves an account by its ID
	// Returns ErrAccountNotFound if the account doesn't exist
	GetAccountByID(ctx context.Context, id int64) (*account.Account, error)

	ListAccounts(ctx context.Context, page, perPage int) ([]*account.Account, int64, error)

	// ListAccountsByUserID returns ErrUserNotFound for an unknown user.
	ListAccountsByUserID(ctx context.Context, userID int64) ([]*account.Account, error)

	Deposit(ctx context.Context, accountID, amount int64) (*account.Account, error)
	Withdraw(ctx context.Context, accountID, amount int64) (*account.Account, error)

	// GetStatement pages through the projected statement of an account, newest first.
	GetStatement(ctx context.Context, accountID int64, page, perPage int) ([]*statement.Entry, int64, error)
}

// TransactionService defines the interface for transfer operations
type TransactionService interface {
	Transfer(ctx context.Context, amount, sourceAccountID, destinationAccountID int64) (*transaction.Transaction, error)

	// GetTransactionByID returns ErrTransactionNotFound if the transfer doesn't exist
	GetTransactionByID(ctx context.Context, id int64) (*transaction.Transaction, error)

	ListTransactions(ctx context.Context, page, perPage int) ([]*transaction.Transaction, int64, error)

	// GetTransactionsByAccountID returns transfers touching the account, newest first.
	// Returns ErrAccountNotFound if the account doesn't exist
	GetTransactionsByAccountID(ctx context.Context, accountID int64, page, perPage int) ([]*transaction.Transaction, int64, error)
}

func pageOffset(page, perPage int) int {
	return (page - 1) * perPage
}
