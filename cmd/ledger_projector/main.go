package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/banking-transfer-api/internal/config"
	"github.com/banking-transfer-api/internal/data/mongo"
	"github.com/banking-transfer-api/internal/data/postgres"
	"github.com/banking-transfer-api/internal/ledger_projector/consumer"
	"github.com/banking-transfer-api/internal/ledger_projector/outbox_poller"
	"github.com/banking-transfer-api/internal/ledger_projector/service"
	"github.com/banking-transfer-api/internal/logger"
	"github.com/banking-transfer-api/internal/platform/messaging/consumers"
	"github.com/banking-transfer-api/internal/platform/messaging/producers"
	"github.com/banking-transfer-api/internal/platform/persistence"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("ledger_projector")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	log.Info("Starting Ledger Projector",
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

	outboxRepo := postgres.NewOutboxRepository(log, postgresDB.Pool())
	statementRepo := mongo.NewStatementRepository(log, mongoDB.Database())
	if err := statementRepo.EnsureIndexes(appCtx); err != nil {
		log.Error("Failed to ensure statement indexes", "error", err)
		os.Exit(1)
	}

	eventProducer, err := producers.NewBalanceEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize balance event producer", "error", err)
		os.Exit(1)
	}

	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}

	projection, err := service.NewWorkerPoolProjectionService(
		service.NewStatementProjector(statementRepo, log.With("component", "statement_projector")),
		cfg.WorkerPool,
		log,
	)
	if err != nil {
		log.Error("Failed to initialize worker pool", "error", err)
		os.Exit(1)
	}

	eventHandler := consumer.NewBalanceEventHandler(log, projection, dlqProducer)
	kafkaConsumer := consumers.NewKafkaConsumer(log, &cfg.Kafka)

	relay := outbox_poller.NewKafkaRelay(outboxRepo, eventProducer, log.With("component", "outbox_relay"))
	poller := outbox_poller.NewPoller(&cfg.Outbox, outboxRepo, relay, log)

	if err := kafkaConsumer.Subscribe(appCtx, eventHandler.HandleMessage); err != nil {
		log.Error("Failed to subscribe to balance events", "error", err)
		os.Exit(1)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Start(appCtx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-quit
	log.Info("Shutdown signal received")

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	pollerDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(pollerDone)
	}()
	select {
	case <-pollerDone:
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached before the outbox poller stopped")
	}

	if err := kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}
	projection.Shutdown()
	if err := eventProducer.Close(); err != nil {
		log.Error("Error closing balance event producer", "error", err)
	}
	if err := dlqProducer.Close(); err != nil {
		log.Error("Error closing DLQ Kafka producer", "error", err)
	}

	postgresDB.Close()
	if err := mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	log.Info("Ledger Projector shutdown completed")
}
