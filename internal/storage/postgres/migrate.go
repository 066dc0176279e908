// internal/storage/postgres/migrate.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"finance-tracker/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies goose command ("up", "down", "status", ...) using the
// embedded migrations. It opens its own database/sql connection because goose
// does not work on a pgx pool.
func RunMigrations(ctx context.Context, dsn, command string, args ...string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	slog.Info("Running migrations", "command", command)
	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
