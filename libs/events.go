package libs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"electronics-store/config"
	"electronics-store/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type OrderPlacedEvent struct {
	EventID       string               `json:"event_id"`
	OrderID       int                  `json:"order_id"`
	UserID        int                  `json:"user_id"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Items         []models.OrderItem   `json:"items"`
	Status        models.OrderStatus   `json:"status"`
	Timestamp     time.Time            `json:"timestamp"`
}

func NewOrderPlacedEvent(order *models.Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		EventID:       uuid.NewString(),
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		Items:         order.Items,
		Status:        order.Status,
		Timestamp:     time.Now().UTC(),
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type EventPublisher struct {
	writer messageWriter
}

func NewEventPublisher(cfg config.KafkaConfig) *EventPublisher {
	return &EventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(cfg.Brokers, ",")...),
			Topic:        cfg.OrderTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *EventPublisher) OrderPlaced(ctx context.Context, _ models.Identity, order *models.Order) error {
	event := NewOrderPlacedEvent(order)
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("ORDER#%d", order.ID)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.placed")},
		},
	})
	if err != nil {
		return fmt.Errorf("publish order.placed: %w", err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
