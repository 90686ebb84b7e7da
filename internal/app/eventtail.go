package app

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant-pos/internal/config"
	"restaurant-pos/internal/connections/rabbitmq"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/viewcache"
)

// RunEventTail attaches a console client to the broadcast channel: every
// event is merged into a local view cache with the same upsert-by-identifier
// rule the browser clients use, then printed as a board line. Useful for
// watching a service floor from a terminal.
func RunEventTail(ctx context.Context, cfg config.App) error {
	lg := logger.New("event-tail")

	mq, err := rabbitmq.Dial(cfg.Rabbit)
	if err != nil {
		return err
	}
	defer mq.Close()

	deliveries, stop, err := mq.OpenConsumer(consumerTag("event-tail"))
	if err != nil {
		return err
	}
	defer stop()

	cache := viewcache.New()
	lg.Info("event_tail_started", nil)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			var ev domain.Event
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				lg.Error("event_decode_failed", err, nil)
				continue
			}
			cache.Apply(ev)
			printEvent(ev, cache)
		}
	}
}

func printEvent(ev domain.Event, cache *viewcache.Store) {
	stamp := ev.OccurredAt.Format("15:04:05")
	switch {
	case ev.Order != nil:
		o := ev.Order
		table := "-"
		if o.TableNumber != nil {
			table = *o.TableNumber
		}
		fmt.Printf("%s  %-18s %s  table=%-4s status=%-10s paid=%-8s RM%.2f  (%d orders tracked)\n",
			stamp, ev.Type, o.Number, table, o.Status, o.PaymentStatus, o.TotalAmount, cache.Len())
	case ev.Table != nil:
		t := ev.Table
		fmt.Printf("%s  %-18s table %s -> %s\n", stamp, ev.Type, t.Number, t.Status)
	case ev.Payment != nil:
		p := ev.Payment
		fmt.Printf("%s  %-18s %s RM%.2f via %s\n", stamp, ev.Type, p.OrderNumber, p.Amount, p.Method)
	}
}
