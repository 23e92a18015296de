package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/banking-transfer-api/internal/api_gateway/service"
	"github.com/banking-transfer-api/internal/domain/account"
	"github.com/banking-transfer-api/internal/domain/money"
	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/banking-transfer-api/internal/domain/transaction"
	"github.com/banking-transfer-api/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// Error codes returned in the response envelope.
const (
	CodeAccountNotFound        = "ACCOUNT_NOT_FOUND"
	CodeTransactionNotFound    = "TRANSACTION_NOT_FOUND"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeInvalidAmount          = "INVALID_AMOUNT"
	CodeInsufficientBalance    = "INSUFFICIENT_BALANCE"
	CodeSameAccountTransfer    = "SAME_ACCOUNT_TRANSFER"
	CodeDuplicateEmail         = "DUPLICATE_EMAIL"
	CodeDuplicateAccountNumber = "DUPLICATE_ACCOUNT_NUMBER"
	CodeValidation             = "VALIDATION_ERROR"
)

// respondError maps service and domain errors onto HTTP statuses. Anything not
// recognised, including *shared.StorageError, becomes an opaque 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var (
		accountNotFound account.ErrAccountNotFound
		ownerNotFound   account.ErrOwnerNotFound
		dupAccount      account.ErrDuplicateAccountNumber
		dupEmail        user.ErrDuplicateEmail
		storageErr      *shared.StorageError
	)

	switch {
	case errors.As(err, &accountNotFound):
		RespondWithError(c, http.StatusNotFound, CodeAccountNotFound, accountNotFound.Error())
	case errors.Is(err, transaction.ErrTransactionNotFound{}):
		RespondWithError(c, http.StatusNotFound, CodeTransactionNotFound, "Transaction not found")
	case errors.Is(err, user.ErrUserNotFound{}), errors.As(err, &ownerNotFound):
		RespondWithError(c, http.StatusNotFound, CodeUserNotFound, "User not found")
	case errors.Is(err, money.ErrInvalidAmount), errors.Is(err, account.ErrNegativeInitialFunds):
		RespondWithError(c, http.StatusBadRequest, CodeInvalidAmount, err.Error())
	case errors.Is(err, account.ErrInsufficientBalance):
		RespondWithError(c, http.StatusBadRequest, CodeInsufficientBalance, err.Error())
	case errors.Is(err, transaction.ErrSameAccountTransfer):
		RespondWithError(c, http.StatusBadRequest, CodeSameAccountTransfer, err.Error())
	case errors.As(err, &dupEmail):
		RespondWithError(c, http.StatusConflict, CodeDuplicateEmail, "A user with this email already exists")
	case errors.As(err, &dupAccount):
		RespondWithError(c, http.StatusConflict, CodeDuplicateAccountNumber, "An account with this bank account number already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		RespondUnauthorized(c, "Invalid email or password")
	case errors.Is(err, user.ErrEmptyName),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, account.ErrEmptyBankName),
		errors.Is(err, account.ErrEmptyAccountNumber):
		RespondWithError(c, http.StatusBadRequest, CodeValidation, err.Error())
	case errors.As(err, &storageErr):
		_ = c.Error(err)
		logger.Error("Storage failure", "op", storageErr.Op, "error", storageErr.Err)
		RespondInternalError(c)
	default:
		_ = c.Error(err)
		logger.Error("Unhandled error", "error", err)
		RespondInternalError(c)
	}
}
