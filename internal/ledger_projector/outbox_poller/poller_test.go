package outbox_poller

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/banking-transfer-api/internal/config"
	"github.com/banking-transfer-api/internal/domain/outbox"
	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPoller(repo outbox.Repository, relay EventRelay) *Poller {
	cfg := &config.OutboxConfig{
		PollingInterval:  10 * time.Millisecond,
		BatchSize:        10,
		MaxRetryAttempts: 3,
	}
	return NewPoller(cfg, repo, relay, discardLogger())
}

func TestPoller_ProcessPendingMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("RelaysInOrder", func(t *testing.T) {
		repo := new(MockOutboxRepo)
		relay := new(MockRelay)
		m1, m2 := pendingMessage(1, 5, 0), pendingMessage(2, 6, 0)
		repo.On("GetPending", ctx, 10).Return([]*outbox.Message{m1, m2}, nil).Once()
		first := relay.On("Relay", ctx, m1).Return(nil).Once()
		relay.On("Relay", ctx, m2).Return(nil).Once().NotBefore(first)

		require.NoError(t, newTestPoller(repo, relay).processPendingMessages(ctx))
		relay.AssertExpectations(t)
	})

	t.Run("NothingPending", func(t *testing.T) {
		repo := new(MockOutboxRepo)
		relay := new(MockRelay)
		repo.On("GetPending", ctx, 10).Return([]*outbox.Message{}, nil).Once()

		require.NoError(t, newTestPoller(repo, relay).processPendingMessages(ctx))
		relay.AssertNotCalled(t, "Relay", mock.Anything, mock.Anything)
	})

	t.Run("GetPendingError", func(t *testing.T) {
		repo := new(MockOutboxRepo)
		repo.On("GetPending", ctx, 10).Return(nil, errors.New("db error")).Once()

		err := newTestPoller(repo, new(MockRelay)).processPendingMessages(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get pending outbox messages")
	})

	t.Run("RetryableFailureStopsBatch", func(t *testing.T) {
		repo := new(MockOutboxRepo)
		relay := new(MockRelay)
		m1, m2 := pendingMessage(1, 5, 0), pendingMessage(2, 5, 0)
		repo.On("GetPending", ctx, 10).Return([]*outbox.Message{m1, m2}, nil).Once()
		relay.On("Relay", ctx, m1).Return(errors.New("broker down")).Once()
		repo.On("IncrementAttempts", ctx, int64(1)).Return(nil).Once()

		require.NoError(t, newTestPoller(repo, relay).processPendingMessages(ctx))
		relay.AssertNotCalled(t, "Relay", ctx, m2)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MaxAttemptsMarksFailedAndContinues", func(t *testing.T) {
		repo := new(MockOutboxRepo)
		relay := new(MockRelay)
		m1, m2 := pendingMessage(1, 5, 2), pendingMessage(2, 6, 0)
		repo.On("GetPending", ctx, 10).Return([]*outbox.Message{m1, m2}, nil).Once()
		relay.On("Relay", ctx, m1).Return(errors.New("broker down")).Once()
		repo.On("IncrementAttempts", ctx, int64(1)).Return(nil).Once()
		repo.On("UpdateStatus", ctx, int64(1), shared.OutboxStatusFailedToPublish).Return(nil).Once()
		relay.On("Relay", ctx, m2).Return(nil).Once()

		require.NoError(t, newTestPoller(repo, relay).processPendingMessages(ctx))
		repo.AssertExpectations(t)
		relay.AssertExpectations(t)
	})

	t.Run("UndecodableIsSkippedWithoutRetry", func(t *testing.T) {
		repo := new(MockOutboxRepo)
		relay := new(MockRelay)
		m1, m2 := pendingMessage(1, 5, 0), pendingMessage(2, 6, 0)
		repo.On("GetPending", ctx, 10).Return([]*outbox.Message{m1, m2}, nil).Once()
		relay.On("Relay", ctx, m1).Return(fmt.Errorf("%w: outbox 1", ErrUndecodablePayload)).Once()
		relay.On("Relay", ctx, m2).Return(nil).Once()

		require.NoError(t, newTestPoller(repo, relay).processPendingMessages(ctx))
		repo.AssertNotCalled(t, "IncrementAttempts", mock.Anything, mock.Anything)
		relay.AssertExpectations(t)
	})

	t.Run("PublishedButUnmarkedKeepsAttempts", func(t *testing.T) {
		repo := new(MockOutboxRepo)
		relay := new(MockRelay)
		m1, m2 := pendingMessage(1, 5, 2), pendingMessage(2, 6, 0)
		repo.On("GetPending", ctx, 10).Return([]*outbox.Message{m1, m2}, nil).Once()
		relay.On("Relay", ctx, m1).
			Return(fmt.Errorf("%w: outbox 1: %w", ErrPublishedNotMarked, errors.New("connection reset"))).Once()

		err := newTestPoller(repo, relay).processPendingMessages(ctx)
		require.ErrorIs(t, err, ErrPublishedNotMarked)
		repo.AssertNotCalled(t, "IncrementAttempts", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		relay.AssertNotCalled(t, "Relay", ctx, m2)
	})

	t.Run("IncrementFailure", func(t *testing.T) {
		repo := new(MockOutboxRepo)
		relay := new(MockRelay)
		m1 := pendingMessage(1, 5, 0)
		repo.On("GetPending", ctx, 10).Return([]*outbox.Message{m1}, nil).Once()
		relay.On("Relay", ctx, m1).Return(errors.New("broker down")).Once()
		repo.On("IncrementAttempts", ctx, int64(1)).Return(errors.New("db down")).Once()

		err := newTestPoller(repo, relay).processPendingMessages(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to increment attempts")
	})
}

func TestPoller_StartStopsOnCancel(t *testing.T) {
	repo := new(MockOutboxRepo)
	repo.On("GetPending", mock.Anything, 10).Return([]*outbox.Message{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		newTestPoller(repo, new(MockRelay)).Start(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
	repo.AssertCalled(t, "GetPending", mock.Anything, 10)
}
