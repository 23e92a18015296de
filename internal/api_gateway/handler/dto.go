package handler

import (
	"encoding/json"

	"github.com/banking-transfer-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// RegisterRequest represents a request to create a user
type RegisterRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	IdentityType   string `json:"identity_type" binding:"max=50"`
	IdentityNumber string `json:"identity_number" binding:"max=50"`
	Address        string `json:"address" binding:"max=255"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	IdentityType   string `json:"identity_type,omitempty"`
	IdentityNumber string `json:"identity_number,omitempty"`
	Address        string `json:"address,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// CreateAccountRequest represents a request to open an account for the caller
type CreateAccountRequest struct {
	BankName          string          `json:"bank_name" binding:"required,max=100"`
	BankAccountNumber string          `json:"bank_account_number" binding:"required,max=34"`
	InitialBalance    json.RawMessage `json:"initial_balance"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID                int64  `json:"id"`
	UserID            int64  `json:"user_id"`
	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	Balance           int64  `json:"balance"`
	BalanceFormatted  string `json:"balance_formatted"`
	Version           int    `json:"version"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// AmountRequest is the body of deposit and withdraw calls
type AmountRequest struct {
	Amount json.RawMessage `json:"amount" binding:"required"`
}

// CreateTransferRequest represents a request to move money between two accounts
type CreateTransferRequest struct {
	Amount               json.RawMessage `json:"amount" binding:"required"`
	SourceAccountID      int64           `json:"source_account_id" binding:"required,gt=0"`
	DestinationAccountID int64           `json:"destination_account_id" binding:"required,gt=0"`
}

// TransactionResponse represents a transfer in API responses
type TransactionResponse struct {
	ID                   int64  `json:"id"`
	Amount               int64  `json:"amount"`
	AmountFormatted      string `json:"amount_formatted"`
	SourceAccountID      int64  `json:"source_account_id"`
	DestinationAccountID int64  `json:"destination_account_id"`
	CreatedAt            string `json:"created_at"`
}

// StatementEntryResponse represents one line of an account statement
type StatementEntryResponse struct {
	EventID               string `json:"event_id"`
	EventType             string `json:"event_type"`
	Movement              string `json:"movement"`
	Amount                int64  `json:"amount"`
	AmountFormatted       string `json:"amount_formatted"`
	BalanceAfter          int64  `json:"balance_after"`
	CounterpartyAccountID *int64 `json:"counterparty_account_id,omitempty"`
	TransactionID         *int64 `json:"transaction_id,omitempty"`
	OccurredAt            string `json:"occurred_at"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}

// parseAmount reads a JSON number or numeric string in minor units. An absent
// value parses as zero.
func parseAmount(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return 0, money.ErrInvalidAmount
	}
	return money.FromDecimal(d)
}
