package producers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/banking-transfer-api/internal/config"
	"github.com/segmentio/kafka-go"
)

// BalanceEventProducer writes outbox payloads to the balance event topic.
// Messages are keyed by account id; the hash balancer keeps one account's
// events on one partition and therefore in order.
type BalanceEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewBalanceEventProducer ensures the topic exists and returns a synchronous producer.
func NewBalanceEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*BalanceEventProducer, error) {
	if cfg.BalanceEventsTopic == "" {
		return nil, fmt.Errorf("kafka balance events topic is not configured")
	}

	conn, err := dialFirstBroker(cfg.BrokerList())
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for balance event producer: %w", err)
	}
	defer conn.Close()

	if err := createKafkaTopicIfNotExists(conn, cfg.BalanceEventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure topic %s exists: %w", cfg.BalanceEventsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.BrokerList()...),
		Topic:        cfg.BalanceEventsTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: cfg.MaxWait,
	}

	return &BalanceEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.BalanceEventsTopic,
	}, nil
}

// Publish blocks until the brokers acknowledge the message.
func (p *BalanceEventProducer) Publish(ctx context.Context, key string, value []byte, headers ...kafka.Header) error {
	msg := kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: headers,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish balance event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published balance event", "topic", p.topic, "key", key)
	return nil
}

func (p *BalanceEventProducer) Close() error {
	p.logger.Info("Closing balance event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
