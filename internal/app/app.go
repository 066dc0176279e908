// Package app assembles the ledger from configuration for the binaries.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"finance-tracker/internal/cache"
	"finance-tracker/internal/config"
	"finance-tracker/internal/events"
	"finance-tracker/internal/service"
	"finance-tracker/internal/storage"
	"finance-tracker/internal/storage/memory"
	"finance-tracker/internal/storage/postgres"
)

const MemoryDSN = "memory://"

// App owns the resources behind a Ledger. Close releases them.
type App struct {
	Ledger *service.Ledger

	closers []func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{}

	store, err := a.openStore(ctx, cfg.DBConn)
	if err != nil {
		return nil, err
	}

	stats, err := cache.New(cfg.CacheMaxCost)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create stats cache: %w", err)
	}
	a.closers = append(a.closers, stats.Close)

	var pub events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = p.Close() })
		pub = p
		slog.Info("Publishing events", "exchange", cfg.AMQPExchange)
	}

	a.Ledger = service.NewLedger(store, stats, pub)
	return a, nil
}

func (a *App) openStore(ctx context.Context, dsn string) (storage.Store, error) {
	if dsn == MemoryDSN {
		slog.Warn("Using in-memory storage, data is lost on restart")
		return memory.New(), nil
	}

	pool, err := postgres.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, pool.Close)
	return postgres.NewStorage(pool), nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
