package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/banking-transfer-api/internal/config"
	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/panjf2000/ants/v2"
)

// WorkerPoolProjectionService bounds the number of concurrent projections
type WorkerPoolProjectionService struct {
	baseService ProjectionService
	pool        *ants.Pool
	logger      *slog.Logger
}

func NewWorkerPoolProjectionService(
	baseService ProjectionService,
	cfg config.WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolProjectionService, error) {
	pool, err := ants.NewPool(cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &WorkerPoolProjectionService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
	}, nil
}

// Project runs the projection on a pooled worker and waits for its result.
func (s *WorkerPoolProjectionService) Project(ctx context.Context, event *shared.BalanceEvent) error {
	resultChan := make(chan error, 1)
	eventCopy := *event

	if err := s.pool.Submit(func() {
		resultChan <- s.baseService.Project(ctx, &eventCopy)
	}); err != nil {
		s.logger.Error("Failed to submit projection to worker pool", "event_id", event.EventID.String(), "error", err)
		return fmt.Errorf("submit projection: %w", err)
	}

	select {
	case err := <-resultChan:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolProjectionService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

func (s *WorkerPoolProjectionService) Running() int {
	return s.pool.Running()
}

func (s *WorkerPoolProjectionService) Capacity() int {
	return s.pool.Cap()
}
