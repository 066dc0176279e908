package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"finance-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// newTestStorage connects to TEST_DATABASE_URL, migrates it and gives each test
// its own user id so tests do not see each other's rows.
func newTestStorage(t *testing.T) (*Storage, int64) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	if err := RunMigrations(ctx, dsn, "up"); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	pool, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)

	userID := time.Now().UnixNano()
	t.Cleanup(func() {
		for _, table := range []string{"transactions", "month_history", "year_history", "categories", "user_settings"} {
			_, _ = pool.Exec(context.Background(), "DELETE FROM "+table+" WHERE user_id = $1", userID)
		}
	})

	return NewStorage(pool), userID
}

func mustCategory(t *testing.T, s *Storage, userID int64, name string, tt domain.TransactionType) {
	t.Helper()
	if _, err := s.CreateCategory(context.Background(), userID, domain.NewCategory{Name: name, Icon: "🍔", Type: tt}); err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
}

func TestCreateTransaction_UpdatesAggregates(t *testing.T) {
	s, userID := newTestStorage(t)
	ctx := context.Background()
	mustCategory(t, s, userID, "Food", domain.Expense)

	date := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
	for _, amount := range []string{"10.25", "4.75"} {
		_, err := s.CreateTransaction(ctx, userID, domain.NewTransaction{
			Amount:   decimal.RequireFromString(amount),
			Date:     date,
			Type:     domain.Expense,
			Category: "Food",
		})
		if err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	days, err := s.MonthHistory(ctx, userID, 2025, 3)
	if err != nil {
		t.Fatalf("MonthHistory: %v", err)
	}
	if len(days) != 1 || days[0].Day != 14 {
		t.Fatalf("expected one row for day 14, got %+v", days)
	}
	if !days[0].Expense.Equal(decimal.RequireFromString("15.00")) || !days[0].Income.IsZero() {
		t.Errorf("day row = income %s expense %s, want 0 / 15.00", days[0].Income, days[0].Expense)
	}

	months, err := s.YearHistory(ctx, userID, 2025)
	if err != nil {
		t.Fatalf("YearHistory: %v", err)
	}
	if len(months) != 1 || !months[0].Expense.Equal(decimal.RequireFromString("15.00")) {
		t.Errorf("unexpected year history %+v", months)
	}
}

func TestCreateTransaction_UnknownCategoryWritesNothing(t *testing.T) {
	s, userID := newTestStorage(t)
	ctx := context.Background()

	_, err := s.CreateTransaction(ctx, userID, domain.NewTransaction{
		Amount:   decimal.RequireFromString("5"),
		Date:     time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Type:     domain.Income,
		Category: "Salary",
	})
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	txs, err := s.ListTransactions(ctx, userID, time.Time{}, time.Now().AddDate(10, 0, 0))
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	years, err := s.HistoryYears(ctx, userID)
	if err != nil {
		t.Fatalf("HistoryYears: %v", err)
	}
	if len(txs) != 0 || len(years) != 0 {
		t.Errorf("expected no rows, got %d transactions and years %v", len(txs), years)
	}
}

func TestDeleteTransaction_ReversesAggregates(t *testing.T) {
	s, userID := newTestStorage(t)
	ctx := context.Background()
	mustCategory(t, s, userID, "Salary", domain.Income)

	created, err := s.CreateTransaction(ctx, userID, domain.NewTransaction{
		Amount:   decimal.RequireFromString("1000"),
		Date:     time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		Type:     domain.Income,
		Category: "Salary",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if _, err := s.DeleteTransaction(ctx, userID, created.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if _, err := s.DeleteTransaction(ctx, userID, created.ID); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("second delete: expected ErrTransactionNotFound, got %v", err)
	}

	months, err := s.YearHistory(ctx, userID, 2025)
	if err != nil {
		t.Fatalf("YearHistory: %v", err)
	}
	if len(months) != 1 || !months[0].Income.IsZero() {
		t.Errorf("expected zeroed month row, got %+v", months)
	}
}

func TestCategoriesAndSettings(t *testing.T) {
	s, userID := newTestStorage(t)
	ctx := context.Background()
	mustCategory(t, s, userID, "Rent", domain.Expense)

	_, err := s.CreateCategory(ctx, userID, domain.NewCategory{Name: "Rent", Type: domain.Expense})
	if !errors.Is(err, domain.ErrCategoryExists) {
		t.Errorf("duplicate category: expected ErrCategoryExists, got %v", err)
	}

	settings, err := s.GetOrCreateSettings(ctx, userID)
	if err != nil {
		t.Fatalf("GetOrCreateSettings: %v", err)
	}
	if settings.Currency != domain.DefaultCurrency {
		t.Errorf("currency = %q, want %q", settings.Currency, domain.DefaultCurrency)
	}

	settings, err = s.UpdateCurrency(ctx, userID, "EUR")
	if err != nil || settings.Currency != "EUR" {
		t.Fatalf("UpdateCurrency = %+v, %v", settings, err)
	}

	if err := s.DeleteCategory(ctx, userID, "Rent", domain.Income); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("wrong-type delete: expected ErrCategoryNotFound, got %v", err)
	}
	if err := s.DeleteCategory(ctx, userID, "Rent", domain.Expense); err != nil {
		t.Errorf("DeleteCategory: %v", err)
	}
}
