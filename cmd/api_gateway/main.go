package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/banking-transfer-api/internal/api_gateway"
	"github.com/banking-transfer-api/internal/api_gateway/service"
	"github.com/banking-transfer-api/internal/config"
	"github.com/banking-transfer-api/internal/data/mongo"
	"github.com/banking-transfer-api/internal/data/postgres"
	"github.com/banking-transfer-api/internal/logger"
	"github.com/banking-transfer-api/internal/platform/auth"
	"github.com/banking-transfer-api/internal/platform/persistence"
	"github.com/banking-transfer-api/internal/transfer_engine/components"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("api_gateway")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	log.Info("Starting API Gateway",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	pool := postgresDB.Pool()
	userRepo := postgres.NewUserRepository(log, pool)
	accountRepo := postgres.NewAccountRepository(log, pool)
	transactionRepo := postgres.NewTransactionRepository(log, pool)
	outboxRepo := postgres.NewOutboxRepository(log, pool)
	statementRepo := mongo.NewStatementRepository(log, mongoDB.Database())

	if err := statementRepo.EnsureIndexes(appCtx); err != nil {
		log.Error("Failed to ensure statement indexes", "error", err)
		os.Exit(1)
	}

	engine := components.CreateEngine(pool, accountRepo, transactionRepo, outboxRepo, log)

	hasher, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		log.Error("Failed to initialize password hasher", "error", err)
		os.Exit(1)
	}
	tokenIssuer := auth.NewTokenIssuer(cfg.Auth, cfg.Application.Name)

	userService := service.NewUserService(log, userRepo, hasher, tokenIssuer)
	accountService := service.NewAccountService(log, accountRepo, userRepo, statementRepo, engine)
	transactionService := service.NewTransactionService(log, transactionRepo, accountRepo, engine)

	server := api_gateway.NewServer(log, cfg, userService, accountService, transactionService, tokenIssuer, map[string]api_gateway.Pinger{
		"postgres": postgresDB,
		"mongodb":  mongoDB,
	})

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case serverErr = <-errChan:
		log.Error("Server error occurred", "error", serverErr)
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown")

	// In-flight transfers finish before the pool goes away.
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
		serverErr = err
	}

	postgresDB.Close()

	if err := mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	if serverErr != nil {
		log.Error("API Gateway shutdown completed with errors", "error", serverErr)
		os.Exit(1)
	}
	log.Info("API Gateway shutdown completed successfully")
}
