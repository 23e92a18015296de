package api_gateway

import (
	"log/slog"

	"github.com/banking-transfer-api/internal/api_gateway/handler"
	"github.com/banking-transfer-api/internal/api_gateway/middleware"
	"github.com/gin-gonic/gin"
)

type handlers struct {
	auth         *handler.AuthHandler
	users        *handler.UserHandler
	accounts     *handler.AccountHandler
	transactions *handler.TransactionHandler
}

// setupRouter configures API routes and middleware for the application.
// The correlation id must be set before the request logger reads it.
func setupRouter(logger *slog.Logger, r *gin.Engine, h handlers, tokenParser middleware.TokenParser, checks map[string]Pinger) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))

	v1 := r.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.auth.Register)
			authGroup.POST("/login", h.auth.Login)
		}

		protected := v1.Group("")
		protected.Use(middleware.Authenticate(tokenParser))

		users := protected.Group("/users")
		{
			users.GET("", h.users.List)
			users.GET("/:id", h.users.GetByID)
			users.GET("/:id/accounts", h.users.GetAccounts)
		}

		accounts := protected.Group("/accounts")
		{
			accounts.POST("", h.accounts.Create)
			accounts.GET("", h.accounts.List)
			accounts.GET("/:id", h.accounts.GetByID)
			accounts.POST("/:id/deposit", h.accounts.Deposit)
			accounts.POST("/:id/withdraw", h.accounts.Withdraw)
			accounts.GET("/:id/transactions", h.accounts.GetTransactions)
			accounts.GET("/:id/statement", h.accounts.GetStatement)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.POST("", h.transactions.Create)
			transactions.GET("", h.transactions.List)
			transactions.GET("/:id", h.transactions.GetByID)
		}
	}

	r.GET("/health", healthHandler(logger, checks))
}
