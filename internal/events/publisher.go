package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/akylbek/payment-system/payment-broker/internal/models"
)

const (
	SessionCreated   = "payment.session.created"
	SessionConfirmed = "payment.session.confirmed"
	SessionCanceled  = "payment.session.canceled"
)

// Publisher emits session lifecycle events to Kafka. With no brokers
// configured it is a no-op, so the broker runs fine without Kafka.
// Publishing is best-effort: failures are logged, never surfaced.
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewPublisher(brokers string, logger *zap.Logger) *Publisher {
	p := &Publisher{logger: logger}
	if brokers != "" {
		p.writer = &kafka.Writer{
			Addr:     kafka.TCP(brokers),
			Topic:    "payment.session.lifecycle",
			Balancer: &kafka.LeastBytes{},
		}
	}
	return p
}

func (p *Publisher) Publish(ctx context.Context, eventType, sessionID string, details models.SettlementDetails) {
	if p.writer == nil {
		return
	}

	event := map[string]interface{}{
		"event":      eventType,
		"session_id": sessionID,
		"amount":     details.Amount,
		"currency":   details.Currency,
		"provider":   details.ProviderName,
		"timestamp":  time.Now(),
	}
	eventJSON, _ := json.Marshal(event)

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(sessionID),
		Value: eventJSON,
	}); err != nil {
		p.logger.Error("Failed to publish session event",
			zap.String("event", eventType),
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}

func (p *Publisher) Close() {
	if p.writer != nil {
		p.writer.Close()
	}
}
