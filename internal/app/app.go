package app

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"restaurant-pos/internal/config"
	"restaurant-pos/internal/connections/database"
	"restaurant-pos/internal/connections/rabbitmq"
	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/notifier"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/server"
	"restaurant-pos/internal/service/loyalty"
	"restaurant-pos/internal/service/order"
	"restaurant-pos/internal/service/table"
)

// RunServer wires storage, broker, services and the HTTP surface, then
// blocks until the context is canceled.
func RunServer(ctx context.Context, cfg config.App) error {
	lg := logger.New("pos-server")

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	mq, err := rabbitmq.Dial(cfg.Rabbit)
	if err != nil {
		return err
	}
	defer mq.Close()
	if err := mq.DeclareEvents(); err != nil {
		return err
	}

	repos := repository.New(pool)
	pub := notifier.NewRabbitPublisher(mq)
	hub := notifier.NewHub()

	tableSvc := table.NewService(repos.Tables, pub, logger.New("table-registry"))
	loyaltySvc := loyalty.NewService(repos.Customers, cfg.Loyalty.WeekendMultiplier, logger.New("loyalty"))
	orderSvc := order.NewService(
		repos.Orders, repos.Menu, repos.Payments,
		tableSvc, loyaltySvc, pub, logger.New("order-lifecycle"),
	)

	sub := notifier.NewSubscriber(mq, hub, logger.New("notifier"))
	go func() {
		if err := sub.Run(ctx, consumerTag("pos-server")); err != nil {
			lg.Error("event_subscriber_stopped", err, nil)
		}
	}()

	handlers := server.NewHandlers(orderSvc, tableSvc, loyaltySvc, repos.Menu, hub, logger.New("http"))
	srv := server.New(":"+strconv.Itoa(cfg.Server.Port), server.Router(handlers))
	return srv.Run(ctx)
}

func consumerTag(prefix string) string {
	host, _ := os.Hostname()
	return fmt.Sprintf("%s.%s.%d", prefix, host, os.Getpid())
}
