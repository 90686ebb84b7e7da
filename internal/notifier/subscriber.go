package notifier

import (
	"context"
	"encoding/json"

	"restaurant-pos/internal/connections/rabbitmq"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/logger"
)

// Subscriber consumes this instance's exclusive queue on the events exchange
// and feeds the in-process Hub, so SSE clients of every server instance see
// the same broadcast domain.
type Subscriber struct {
	client *rabbitmq.Client
	hub    *Hub
	lg     *logger.Logger
}

func NewSubscriber(client *rabbitmq.Client, hub *Hub, lg *logger.Logger) *Subscriber {
	return &Subscriber{client: client, hub: hub, lg: lg}
}

// Run blocks until the context is canceled or the delivery channel closes.
func (s *Subscriber) Run(ctx context.Context, consumerTag string) error {
	deliveries, stop, err := s.client.OpenConsumer(consumerTag)
	if err != nil {
		return err
	}
	defer stop()

	s.lg.Info("event_subscriber_started", map[string]any{"consumer": consumerTag})

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				s.lg.Info("event_subscriber_channel_closed", nil)
				return nil
			}
			var ev domain.Event
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				s.lg.Error("event_decode_failed", err, nil)
				continue
			}
			s.hub.Broadcast(ev)
		}
	}
}
