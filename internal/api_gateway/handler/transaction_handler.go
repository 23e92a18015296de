package handler

import (
	"log/slog"

	"github.com/banking-transfer-api/internal/api_gateway/service"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles HTTP requests for transfers
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// Create performs a transfer synchronously and answers 201 with the committed record
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransferRequest
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

	txn, err := h.transactionService.Transfer(c.Request.Context(), amount, req.SourceAccountID, req.DestinationAccountID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(txn))
}

// GetByID retrieves a transfer by its ID, returns 404 if not found
func (h *TransactionHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "transaction")
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondOK(c, mapTransactionToResponse(txn))
}

func (h *TransactionHandler) List(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	txns, total, err := h.transactionService.ListTransactions(c.Request.Context(), pagination.Page, pagination.PerPage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondPage(c, mapTransactionsToResponse(txns), pagination, total)
}
