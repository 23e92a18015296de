package handler

import (
	"context"
	"log/slog"

	"github.com/banking-transfer-api/internal/api_gateway/middleware"
	"github.com/banking-transfer-api/internal/api_gateway/service"
	"github.com/banking-transfer-api/internal/domain/account"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	accountService     service.AccountService
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService, transactionService service.TransactionService) *AccountHandler {
	return &AccountHandler{
		accountService:     accountService,
		transactionService: transactionService,
		logger:             logger,
	}
}

// Create opens an account owned by the authenticated user
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	initialBalance, err := parseAmount(req.InitialBalance)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	acc, err := h.accountService.CreateAccount(c.Request.Context(), userID, req.BankName, req.BankAccountNumber, initialBalance)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapAccountToResponse(acc))
}

// GetByID retrieves an account by its ID, returning 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "account")
	if !ok {
		return
	}

	acc, err := h.accountService.GetAccountByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

func (h *AccountHandler) List(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	accounts, total, err := h.accountService.ListAccounts(c.Request.Context(), pagination.Page, pagination.PerPage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondPage(c, mapAccountsToResponse(accounts), pagination, total)
}

// Deposit credits the account and returns it with the new balance
func (h *AccountHandler) Deposit(c *gin.Context) {
	h.changeBalance(c, h.accountService.Deposit)
}

// Withdraw debits the account; the full balance may be withdrawn
func (h *AccountHandler) Withdraw(c *gin.Context) {
	h.changeBalance(c, h.accountService.Withdraw)
}

func (h *AccountHandler) changeBalance(c *gin.Context, apply func(ctx context.Context, accountID, amount int64) (*account.Account, error)) {
	id, ok := parseIDParam(c, "id", "account")
	if !ok {
		return
	}

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	acc, err := apply(c.Request.Context(), id, amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// GetTransactions retrieves paginated transfers touching an account
func (h *AccountHandler) GetTransactions(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "account")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	txns, total, err := h.transactionService.GetTransactionsByAccountID(c.Request.Context(), id, pagination.Page, pagination.PerPage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondPage(c, mapTransactionsToResponse(txns), pagination, total)
}

// GetStatement returns the projected statement. Entries appear once the
// ledger projector has consumed the balance events.
func (h *AccountHandler) GetStatement(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "account")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	entries, total, err := h.accountService.GetStatement(c.Request.Context(), id, pagination.Page, pagination.PerPage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondPage(c, mapStatementEntries(entries), pagination, total)
}
