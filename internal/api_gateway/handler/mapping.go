package handler

import (
	"strconv"
	"time"

	"github.com/banking-transfer-api/internal/domain/account"
	"github.com/banking-transfer-api/internal/domain/money"
	"github.com/banking-transfer-api/internal/domain/statement"
	"github.com/banking-transfer-api/internal/domain/transaction"
	"github.com/banking-transfer-api/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive integer path parameter, answering 400 otherwise.
func parseIDParam(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondBadRequest(c, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}

// mapAccountToResponse maps an account entity to an account response DTO
func mapAccountToResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		ID:                acc.ID,
		UserID:            acc.UserID,
		BankName:          acc.BankName,
		BankAccountNumber: acc.BankAccountNumber,
		Balance:           acc.Balance,
		BalanceFormatted:  money.Format(acc.Balance),
		Version:           acc.Version,
		CreatedAt:         acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         acc.UpdatedAt.Format(time.RFC3339),
	}
}

func mapAccountsToResponse(accounts []*account.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, mapAccountToResponse(acc))
	}
	return out
}

func mapTransactionToResponse(txn *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                   txn.ID,
		Amount:               txn.Amount,
		AmountFormatted:      money.Format(txn.Amount),
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		CreatedAt:            txn.CreatedAt.Format(time.RFC3339),
	}
}

func mapTransactionsToResponse(txns []*transaction.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, mapTransactionToResponse(txn))
	}
	return out
}

func mapUserToResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		IdentityType:   u.Profile.IdentityType,
		IdentityNumber: u.Profile.IdentityNumber,
		Address:        u.Profile.Address,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      u.UpdatedAt.Format(time.RFC3339),
	}
}

func mapStatementEntries(entries []*statement.Entry) []StatementEntryResponse {
	out := make([]StatementEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, StatementEntryResponse{
			EventID:               e.EventID,
			EventType:             string(e.EventType),
			Movement:              string(e.Movement),
			Amount:                e.Amount,
			AmountFormatted:       money.Format(e.Amount),
			BalanceAfter:          e.BalanceAfter,
			CounterpartyAccountID: e.CounterpartyAccountID,
			TransactionID:         e.TransactionID,
			OccurredAt:            e.OccurredAt.Format(time.RFC3339),
		})
	}
	return out
}
