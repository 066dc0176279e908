// cmd/migrate/main.go
package main

import (
	"context"
	"log/slog"
	"os"

	"finance-tracker/internal/config"
	"finance-tracker/internal/logging"
	"finance-tracker/internal/storage/postgres"
)

// Usage: migrate [up|down|status|redo|reset|version] [args...]
func main() {
	cfg := config.MustLoad()
	logging.Setup(logging.FromEnv(cfg.LogLevel, cfg.LogFormat))

	command := "up"
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	if err := postgres.RunMigrations(context.Background(), cfg.DBConn, command, args...); err != nil {
		slog.Error("Migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Migrations applied", "command", command)
}
