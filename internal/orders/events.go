package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shop_system/internal/domain"

	"github.com/segmentio/kafka-go"
)

// Event kinds
const (
	EventCreated       = "created"
	EventStatusUpdated = "status_updated"
)

// Event is published whenever an order is created or changes status
type Event struct {
	Kind             string             `json:"kind"`
	OrderID          uint               `json:"orderId"`
	BuyerID          uint               `json:"buyerId"`
	Status           domain.OrderStatus `json:"status"`
	ProductIDs       []uint             `json:"productIds"`
	PaymentReference string             `json:"paymentReference"`
	OccurredAt       time.Time          `json:"occurredAt"`
}

func newEvent(kind string, o *domain.Order) Event {
	return Event{
		Kind:             kind,
		OrderID:          o.ID,
		BuyerID:          o.BuyerID,
		Status:           o.Status,
		ProductIDs:       o.ProductIDs(),
		PaymentReference: o.PaymentReference,
		OccurredAt:       time.Now().UTC(),
	}
}

// Publisher delivers order events
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON to a Kafka topic
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a publisher writing to topic on brokers
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{}, // Balancer for selecting partition
		AllowAutoTopicCreation: true,
	}}
}

// Publish implements Publisher. Keys look like "order-created-42".
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%d", e.Kind, e.OrderID)),
		Value: value,
	})
}

// Close flushes and closes the underlying writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
