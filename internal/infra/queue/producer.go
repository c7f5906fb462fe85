package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventLeadCaptured     = "lead.captured"
	EventLeadConverted    = "lead.converted"
	EventDealStageChanged = "deal.stage_changed"
)

type LeadEvent struct {
	Type       string    `json:"type"`
	LeadID     string    `json:"lead_id"`
	ContactID  string    `json:"contact_id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Company    string    `json:"company,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Interest   string    `json:"interest,omitempty"`
	Message    string    `json:"message,omitempty"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
}

type DealEvent struct {
	Type       string    `json:"type"`
	DealID     string    `json:"deal_id"`
	Title      string    `json:"title"`
	FromStage  string    `json:"from_stage"`
	ToStage    string    `json:"to_stage"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is the channel subset the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, event LeadEvent) error {
	key := RoutingLeadCaptured
	if event.Type == EventLeadConverted {
		key = RoutingLeadConverted
	}
	return p.publish(ctx, key, event)
}

func (p *RabbitMQProducer) PublishDealEvent(ctx context.Context, event DealEvent) error {
	return p.publish(ctx, RoutingDealStageChanged, event)
}

func (p *RabbitMQProducer) publish(ctx context.Context, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}

// LogPublisher stands in when RABBITMQ_URL is not configured.
type LogPublisher struct{}

func (LogPublisher) PublishLeadEvent(_ context.Context, event LeadEvent) error {
	log.Printf("📨 [EVENT] %s lead=%s email=%s", event.Type, event.LeadID, event.Email)
	return nil
}

func (LogPublisher) PublishDealEvent(_ context.Context, event DealEvent) error {
	log.Printf("📨 [EVENT] %s deal=%s %s -> %s", event.Type, event.DealID, event.FromStage, event.ToStage)
	return nil
}
