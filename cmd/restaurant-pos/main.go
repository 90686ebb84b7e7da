package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"restaurant-pos/internal/app"
	"restaurant-pos/internal/config"
	"restaurant-pos/internal/logger"
)

func main() {
	mode := flag.String("mode", "server", "server | event-tail")
	port := flag.Int("port", 0, "http port (overrides config)")
	cfgPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	path := *cfgPath
	if path == "" {
		p, err := config.FindConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, "no config found: pass --config or provide config.yaml")
			os.Exit(2)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": path})
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	switch *mode {
	case "server":
		lg.Info("service_started", map[string]any{"service": "pos-server", "port": cfg.Server.Port})
		if err := app.RunServer(ctx, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "event-tail":
		lg.Info("service_started", map[string]any{"service": "event-tail"})
		if err := app.RunEventTail(ctx, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode must be one of: server | event-tail (got "+strconv.Quote(*mode)+")")
		os.Exit(2)
	}
}
