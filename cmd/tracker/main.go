package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockTracker/internal/collector"
	"StockTracker/internal/config"
	"StockTracker/internal/notifier"
	"StockTracker/internal/scheduler"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	level, _ := zerolog.ParseLevel(cfg.Log.Level)
	zerolog.SetGlobalLevel(level)

	// Init fetcher
	httpClient := collector.NewHTTPClient(cfg.DataSource.Timeout, cfg.Proxy)
	fetcher := collector.NewAlphaVantageFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, httpClient)
	log.Info().Str("source", fetcher.Name()).Str("base_url", cfg.DataSource.BaseURL).Msg("data source ready")

	col := collector.NewCollector(fetcher)
	cn := notifier.NewConsoleNotifier(os.Stdout)
	sched := scheduler.NewScheduler(col, cn, scheduler.NewThrottle(cfg.Schedule.RequestInterval))

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx, os.Stdin) }()

	select {
	case err := <-done:
		if err != nil {
			log.Fatal().Err(err).Msg("session ended")
		}
	case <-ctx.Done():
		// The prompt may be blocked reading stdin; leave without waiting for it.
		// Farewell belongs to Scheduler.Run.
		_ = cn.Send("\n")
		log.Info().Msg("shutdown signal received")
	}
}
