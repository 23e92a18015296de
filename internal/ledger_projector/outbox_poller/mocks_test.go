package outbox_poller

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/banking-transfer-api/internal/domain/outbox"
	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type MockOutboxRepo struct {
	mock.Mock
}

func (m *MockOutboxRepo) Create(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepo) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepo) UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOutboxRepo) IncrementAttempts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepo) WithTx(tx pgx.Tx) outbox.Repository {
	return m
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key string, value []byte, headers ...kafka.Header) error {
	args := m.Called(ctx, key, value, headers)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockRelay struct {
	mock.Mock
}

func (m *MockRelay) Relay(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pendingMessage(id int64, accountID int64, attempts int) *outbox.Message {
	event := &shared.BalanceEvent{
		EventID: uuid.New(),
		Type:    shared.EventTypeDepositCompleted,
		Movements: []shared.BalanceMovement{
			{AccountID: accountID, Kind: shared.MovementDeposit, Amount: 100, BalanceAfter: 100},
		},
		CorrelationID: "corr-" + uuid.NewString(),
		OccurredAt:    time.Now().UTC(),
	}
	payload, _ := json.Marshal(event)
	return &outbox.Message{
		ID:          id,
		EventID:     event.EventID,
		EventType:   event.Type,
		AggregateID: accountID,
		Payload:     payload,
		Status:      shared.OutboxStatusPending,
		Attempts:    attempts,
		CreatedAt:   time.Now().UTC(),
	}
}
