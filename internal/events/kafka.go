package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/domain"
	kafka "github.com/segmentio/kafka-go"
)

// Kafka publishes order events to a topic, keyed by order id. Callers
// own the writer lifecycle and must Close it on shutdown so buffered
// messages are flushed.
type Kafka struct {
	writer *kafka.Writer
}

var _ Publisher = (*Kafka)(nil)

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

type orderPlacedEvent struct {
	OrderID    string    `json:"orderId"`
	AccountID  string    `json:"accountId"`
	TotalCents int64     `json:"totalCents"`
	ItemCount  int       `json:"itemCount"`
	PlacedAt   time.Time `json:"placedAt"`
}

func (p *Kafka) OrderPlaced(ctx context.Context, order domain.Order) error {
	payload, err := json.Marshal(orderPlacedEvent{
		OrderID:    order.ID,
		AccountID:  order.AccountID,
		TotalCents: order.TotalCents(),
		ItemCount:  len(order.Items),
		PlacedAt:   order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID),
		Value: payload,
	})
}

// Close flushes buffered messages and releases the writer.
func (p *Kafka) Close() error {
	return p.writer.Close()
}
