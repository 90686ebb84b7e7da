package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-pos/internal/connections/rabbitmq"
	"restaurant-pos/internal/domain"
)

// Publisher broadcasts a mutation event to every connected client. Delivery
// is best effort: a missed event is recovered by the client's next full
// fetch, never by replay.
type Publisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

const publishTimeout = 5 * time.Second

// RabbitPublisher publishes events to the pos.events fanout exchange and
// waits for the broker confirm.
type RabbitPublisher struct {
	client *rabbitmq.Client
}

func NewRabbitPublisher(client *rabbitmq.Client) *RabbitPublisher {
	return &RabbitPublisher{client: client}
}

func (p *RabbitPublisher) Publish(ctx context.Context, ev domain.Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	headers := amqp.Table{"x-event-type": ev.Type}
	if err := p.client.Publish(ctx, rabbitmq.ExchangeEvents, "", body, headers); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}
