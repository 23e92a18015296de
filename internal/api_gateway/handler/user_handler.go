package handler

import (
	"log/slog"

	"github.com/banking-transfer-api/internal/api_gateway/service"
	"github.com/gin-gonic/gin"
)

// UserHandler serves read access to users and their accounts
type UserHandler struct {
	userService    service.UserService
	accountService service.AccountService
	logger         *slog.Logger
}

func NewUserHandler(logger *slog.Logger, userService service.UserService, accountService service.AccountService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		accountService: accountService,
		logger:         logger,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), pagination.Page, pagination.PerPage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, mapUserToResponse(u))
	}
	RespondPage(c, out, pagination, total)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	u, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondOK(c, mapUserToResponse(u))
}

// GetAccounts lists every account owned by the user
func (h *UserHandler) GetAccounts(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccountsByUserID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondOK(c, mapAccountsToResponse(accounts))
}
