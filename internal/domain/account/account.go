package account

import (
	"errors"
	"time"

	"github.com/banking-transfer-api/internal/domain/money"
)

var (
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInvalidOwner         = errors.New("account owner must be a valid user id")
	ErrEmptyBankName        = errors.New("bank name cannot be empty")
	ErrEmptyAccountNumber   = errors.New("bank account number cannot be empty")
	ErrNegativeInitialFunds = errors.New("initial balance cannot be negative")
)

// Account is a balance holding entity owned by a user.
type Account struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	BankName          string    `json:"bank_name"`
	BankAccountNumber string    `json:"bank_account_number"`
	Balance           int64     `json:"balance"` // minor units, never negative
	Version           int       `json:"version"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewAccount builds an account that has not been persisted yet. The id is
// assigned by the store.
func NewAccount(userID int64, bankName, bankAccountNumber string, initialBalance int64) (*Account, error) {
	if userID <= 0 {
		return nil, ErrInvalidOwner
	}
	if bankName == "" {
		return nil, ErrEmptyBankName
	}
	if bankAccountNumber == "" {
		return nil, ErrEmptyAccountNumber
	}
	if initialBalance < 0 {
		return nil, ErrNegativeInitialFunds
	}

	now := time.Now().UTC()
	return &Account{
		UserID:            userID,
		BankName:          bankName,
		BankAccountNumber: bankAccountNumber,
		Balance:           initialBalance,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Deposit adds amount to the balance.
func (a *Account) Deposit(amount int64) error {
	if err := money.Validate(amount); err != nil {
		return err
	}
	balance, err := money.Add(a.Balance, amount)
	if err != nil {
		return err
	}

	a.replaceBalance(balance)
	return nil
}

// Withdraw subtracts amount from the balance. Withdrawing the full balance is allowed.
func (a *Account) Withdraw(amount int64) error {
	if err := money.Validate(amount); err != nil {
		return err
	}
	if !a.CanWithdraw(amount) {
		return ErrInsufficientBalance
	}

	a.replaceBalance(a.Balance - amount)
	return nil
}

// CanWithdraw checks if the account has sufficient funds for a withdrawal
func (a *Account) CanWithdraw(amount int64) bool {
	return a.Balance >= amount
}

func (a *Account) replaceBalance(balance int64) {
	a.Balance = balance
	a.Version++
	a.UpdatedAt = time.Now().UTC()
}
