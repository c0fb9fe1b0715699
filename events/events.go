// Package events publishes order lifecycle events for downstream consumers
// (analytics, notifications). The server works fine without a broker; an
// unconfigured publisher is a no-op.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"food-ordering-api/models"

	"github.com/segmentio/kafka-go"
)

const (
	TypeOrderCreated       = "order_created"
	TypeOrderStatusChanged = "order_status_changed"
)

type OrderEvent struct {
	Type         string             `json:"type"`
	OrderID      uint               `json:"order_id"`
	CustomerID   uint               `json:"customer_id"`
	RestaurantID uint               `json:"restaurant_id"`
	Status       models.OrderStatus `json:"status"`
	TotalAmount  float64            `json:"total_amount"`
	Timestamp    time.Time          `json:"timestamp"`
}

type Publisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.OrderID), 10)),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}

// Nop discards all events.
type Nop struct{}

func (Nop) PublishOrderEvent(context.Context, OrderEvent) error { return nil }
