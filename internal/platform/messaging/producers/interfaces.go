package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// BalanceEventPublisher relays committed balance events. The key is the
// account id the event belongs to.
type BalanceEventPublisher interface {
	Publish(ctx context.Context, key string, value []byte, headers ...kafka.Header) error
	Close() error
}

// DeadLetterPublisher parks a consumed event that can never be projected,
// together with the reason it was rejected.
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error
	Close() error
}

// KafkaWriter is the subset of *kafka.Writer the producers use.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var (
	_ BalanceEventPublisher = (*BalanceEventProducer)(nil)
	_ DeadLetterPublisher   = (*DLQProducer)(nil)
	_ KafkaWriter           = (*kafka.Writer)(nil)
)
