package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadNotifier tells the sales team about a new lead.
type LeadNotifier interface {
	NotifyLeadCaptured(ctx context.Context, event LeadEvent) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier LeadNotifier
}

func NewWorker(ch *amqp.Channel, notifier LeadNotifier) *Worker {
	return &Worker{Channel: ch, Notifier: notifier}
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				log.Printf("⚠️ [WORKER] Canal fechado, encerrando consumidor")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

// Acknowledger is satisfied by amqp.Delivery.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	w.Process(ctx, d.Body, &d)
}

// Process handles one message body. Malformed or failed messages are rejected
// without requeue so they land in the DLQ.
func (w *Worker) Process(ctx context.Context, body []byte, ack Acknowledger) {
	var event LeadEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("❌ [WORKER] JSON inválido: %s", err)
		ack.Nack(false, false)
		return
	}

	if event.Type != EventLeadCaptured {
		log.Printf("⚠️ [WORKER] Evento ignorado: %s", event.Type)
		ack.Ack(false)
		return
	}

	if err := w.Notifier.NotifyLeadCaptured(ctx, event); err != nil {
		log.Printf("❌ [WORKER] Falha ao notificar lead %s: %s", event.LeadID, err)
		ack.Nack(false, false)
		return
	}

	log.Printf("✅ [WORKER] Lead %s notificado", event.LeadID)
	ack.Ack(false)
}
