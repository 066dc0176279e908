// cmd/bot/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"finance-tracker/internal/app"
	"finance-tracker/internal/bot"
	"finance-tracker/internal/config"
	"finance-tracker/internal/logging"
)

func main() {
	cfg := config.MustLoad()
	logging.Setup(logging.FromEnv(cfg.LogLevel, cfg.LogFormat))

	if cfg.TelegramToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	b, err := bot.New(cfg.TelegramToken, bot.NewCommands(a.Ledger))
	if err != nil {
		slog.Error("Failed to start bot", "error", err)
		os.Exit(1)
	}

	b.Run(ctx)
	slog.Info("Bot stopped")
}
