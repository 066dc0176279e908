package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"finance-tracker/internal/cache"
	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage/memory"
	"finance-tracker/internal/storage/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var (
	day   = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	from  = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to    = time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
	ctx   = context.Background()
	money = decimal.RequireFromString
)

func newMemoryLedger(t *testing.T) (*Ledger, *memory.Store) {
	t.Helper()
	store := memory.New()
	c, err := cache.New(1000)
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	t.Cleanup(c.Close)
	return NewLedger(store, c, nil), store
}

func seedCategory(t *testing.T, l *Ledger, userID int64, name string, tt domain.TransactionType) {
	t.Helper()
	if _, err := l.CreateCategory(ctx, userID, domain.NewCategory{Name: name, Icon: "🍔", Type: tt}); err != nil {
		t.Fatalf("CreateCategory(%s): %v", name, err)
	}
}

func TestCreateTransaction_InvalidPayloadNeverTouchesStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no expectations: any store call fails the test
	store := mocks.NewMockStore(ctrl)
	l := NewLedger(store, nil, nil)

	cases := []struct {
		name string
		in   domain.NewTransaction
		want string
	}{
		{"zero amount", domain.NewTransaction{Amount: decimal.Zero, Date: day, Type: domain.Expense, Category: "Food"}, "Amount"},
		{"negative amount", domain.NewTransaction{Amount: money("-5"), Date: day, Type: domain.Expense, Category: "Food"}, "Amount"},
		{"rounds to zero", domain.NewTransaction{Amount: money("0.001"), Date: day, Type: domain.Expense, Category: "Food"}, "Amount"},
		{"bad type", domain.NewTransaction{Amount: money("5"), Date: day, Type: "transfer", Category: "Food"}, "Type"},
		{"blank category", domain.NewTransaction{Amount: money("5"), Date: day, Type: domain.Income, Category: "   "}, "Category"},
		{"missing date", domain.NewTransaction{Amount: money("5"), Type: domain.Income, Category: "Salary"}, "Date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.CreateTransaction(ctx, 1, tc.in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %q, want mention of %s", err, tc.want)
			}
		})
	}
}

func TestCreateTransaction_UnknownCategoryPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().
		CreateTransaction(gomock.Any(), int64(1), gomock.Any()).
		Return(nil, domain.ErrCategoryNotFound)

	l := NewLedger(store, nil, nil)
	_, err := l.CreateTransaction(ctx, 1, domain.NewTransaction{
		Amount: money("5"), Date: day, Type: domain.Expense, Category: "Nope",
	})
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestCreateTransaction_RoundsAndTrims(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().
		CreateTransaction(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, userID int64, in domain.NewTransaction) (*domain.Transaction, error) {
			if !in.Amount.Equal(money("10.13")) {
				t.Errorf("amount = %s, want 10.13", in.Amount)
			}
			if in.Category != "Food" || in.Description != "lunch" {
				t.Errorf("fields not trimmed: %+v", in)
			}
			return &domain.Transaction{UserID: userID, Amount: in.Amount, Date: in.Date, Type: in.Type, Category: in.Category}, nil
		})

	l := NewLedger(store, nil, nil)
	_, err := l.CreateTransaction(ctx, 1, domain.NewTransaction{
		Amount: money("10.125"), Date: day, Type: domain.Expense, Category: "  Food ", Description: " lunch ",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
}

func TestCreateTransaction_UpdatesHistoryAndBalance(t *testing.T) {
	l, _ := newMemoryLedger(t)
	seedCategory(t, l, 1, "Food", domain.Expense)
	seedCategory(t, l, 1, "Salary", domain.Income)

	for _, in := range []domain.NewTransaction{
		{Amount: money("12.50"), Date: day, Type: domain.Expense, Category: "Food"},
		{Amount: money("7.50"), Date: day, Type: domain.Expense, Category: "Food"},
		{Amount: money("1000"), Date: day.AddDate(0, 0, 1), Type: domain.Income, Category: "Salary"},
	} {
		if _, err := l.CreateTransaction(ctx, 1, in); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	b, err := l.Balance(ctx, 1, from, to)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if !b.Expense.Equal(money("20")) || !b.Income.Equal(money("1000")) {
		t.Errorf("balance = %+v", b)
	}

	points, err := l.History(ctx, 1, domain.TimeframeMonth, domain.Period{Year: 2025, Month: 3})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(points) != 31 {
		t.Fatalf("len(points) = %d, want 31", len(points))
	}
	if p := points[13]; p.Day != 14 || !p.Expense.Equal(money("20")) || !p.Income.IsZero() {
		t.Errorf("day 14 = %+v", p)
	}
	if p := points[14]; !p.Income.Equal(money("1000")) {
		t.Errorf("day 15 = %+v", p)
	}

	year, err := l.History(ctx, 1, domain.TimeframeYear, domain.Period{Year: 2025})
	if err != nil {
		t.Fatalf("History(year): %v", err)
	}
	if len(year) != 12 {
		t.Fatalf("len(year) = %d, want 12", len(year))
	}
	if p := year[2]; p.Month != 3 || !p.Expense.Equal(money("20")) || !p.Income.Equal(money("1000")) {
		t.Errorf("march = %+v", p)
	}
	if !year[0].Income.IsZero() || !year[0].Expense.IsZero() {
		t.Errorf("january should be zero, got %+v", year[0])
	}
}

func TestStatsCacheInvalidatedOnWrite(t *testing.T) {
	l, _ := newMemoryLedger(t)
	seedCategory(t, l, 1, "Food", domain.Expense)

	b, err := l.Balance(ctx, 1, from, to)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if !b.Expense.IsZero() {
		t.Fatalf("expected empty balance, got %+v", b)
	}
	l.cache.Wait()

	tx, err := l.CreateTransaction(ctx, 1, domain.NewTransaction{Amount: money("3"), Date: day, Type: domain.Expense, Category: "Food"})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	b, err = l.Balance(ctx, 1, from, to)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if !b.Expense.Equal(money("3")) {
		t.Errorf("stale balance after create: %+v", b)
	}
	l.cache.Wait()

	if err := l.DeleteTransaction(ctx, 1, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	b, err = l.Balance(ctx, 1, from, to)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if !b.Expense.IsZero() {
		t.Errorf("stale balance after delete: %+v", b)
	}
}

func TestDateRangeLimits(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewLedger(mocks.NewMockStore(ctrl), nil, nil)

	if _, err := l.Balance(ctx, 1, to, from); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("reversed range: err = %v", err)
	}
	if _, err := l.CategoryStats(ctx, 1, from, from.AddDate(0, 0, domain.MaxDateRangeDays+1)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("range too big: err = %v", err)
	}
	if _, err := l.ListTransactions(ctx, 1, time.Time{}, to); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing from: err = %v", err)
	}
}

func TestListTransactionsFormatsAmounts(t *testing.T) {
	l, _ := newMemoryLedger(t)
	seedCategory(t, l, 1, "Food", domain.Expense)
	if _, err := l.UpdateCurrency(ctx, 1, "eur"); err != nil {
		t.Fatalf("UpdateCurrency: %v", err)
	}
	if _, err := l.CreateTransaction(ctx, 1, domain.NewTransaction{Amount: money("1234.5"), Date: day, Type: domain.Expense, Category: "Food"}); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	views, err := l.ListTransactions(ctx, 1, from, to)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("len(views) = %d, want 1", len(views))
	}
	if !strings.Contains(views[0].FormattedAmount, "EUR") {
		t.Errorf("FormattedAmount = %q, want EUR", views[0].FormattedAmount)
	}
}

func TestUpdateCurrency(t *testing.T) {
	l, _ := newMemoryLedger(t)

	us, err := l.GetSettings(ctx, 5)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if us.Currency != domain.DefaultCurrency {
		t.Errorf("default currency = %s", us.Currency)
	}

	if _, err := l.UpdateCurrency(ctx, 5, "XYZ"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("unsupported currency: err = %v", err)
	}
	us, err = l.UpdateCurrency(ctx, 5, " jpy ")
	if err != nil {
		t.Fatalf("UpdateCurrency: %v", err)
	}
	if us.Currency != "JPY" {
		t.Errorf("currency = %s, want JPY", us.Currency)
	}
}

func TestCategories(t *testing.T) {
	l, _ := newMemoryLedger(t)

	if _, err := l.CreateCategory(ctx, 1, domain.NewCategory{Name: "ab", Type: domain.Expense}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("short name: err = %v", err)
	}
	seedCategory(t, l, 1, "Food", domain.Expense)
	seedCategory(t, l, 1, "Salary", domain.Income)

	if _, err := l.CreateCategory(ctx, 1, domain.NewCategory{Name: "Food", Type: domain.Expense}); !errors.Is(err, domain.ErrCategoryExists) {
		t.Errorf("duplicate: err = %v", err)
	}

	expense, err := l.ListCategories(ctx, 1, domain.Expense)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(expense) != 1 || expense[0].Name != "Food" {
		t.Errorf("expense categories = %+v", expense)
	}
	all, err := l.ListCategories(ctx, 1, "")
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}

	if err := l.DeleteCategory(ctx, 1, "Food", domain.Expense); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if err := l.DeleteCategory(ctx, 1, "Food", domain.Expense); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
}

func TestHistoryPeriodsDefaultsToCurrentYear(t *testing.T) {
	l, _ := newMemoryLedger(t)
	l.now = func() time.Time { return time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC) }

	years, err := l.HistoryPeriods(ctx, 1)
	if err != nil {
		t.Fatalf("HistoryPeriods: %v", err)
	}
	if len(years) != 1 || years[0] != 2031 {
		t.Errorf("years = %v, want [2031]", years)
	}
}

func TestHistoryValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewLedger(mocks.NewMockStore(ctrl), nil, nil)

	cases := []struct {
		name string
		tf   domain.Timeframe
		p    domain.Period
	}{
		{"bad timeframe", "week", domain.Period{Year: 2025, Month: 1}},
		{"month out of range", domain.TimeframeMonth, domain.Period{Year: 2025, Month: 13}},
		{"missing month", domain.TimeframeMonth, domain.Period{Year: 2025}},
		{"year out of range", domain.TimeframeYear, domain.Period{Year: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := l.History(ctx, 1, tc.tf, tc.p); !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

// slowBalanceStore pauses Balance after it has read, until release is closed.
type slowBalanceStore struct {
	*memory.Store
	read    chan struct{}
	release chan struct{}
}

func (s *slowBalanceStore) Balance(ctx context.Context, userID int64, from, to time.Time) (domain.Balance, error) {
	b, err := s.Store.Balance(ctx, userID, from, to)
	if s.read != nil {
		s.read <- struct{}{}
		<-s.release
	}
	return b, err
}

func TestStatsCacheIgnoresReadsOverlappingAWrite(t *testing.T) {
	store := &slowBalanceStore{Store: memory.New()}
	c, err := cache.New(1000)
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	t.Cleanup(c.Close)
	l := NewLedger(store, c, nil)
	seedCategory(t, l, 1, "Food", domain.Expense)

	store.read = make(chan struct{})
	store.release = make(chan struct{})
	done := make(chan domain.Balance)
	go func() {
		b, err := l.Balance(ctx, 1, from, to)
		if err != nil {
			t.Errorf("Balance: %v", err)
		}
		done <- b
	}()

	<-store.read
	if _, err := l.CreateTransaction(ctx, 1, domain.NewTransaction{Amount: money("5"), Date: day, Type: domain.Expense, Category: "Food"}); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	close(store.release)

	if b := <-done; !b.Expense.IsZero() {
		t.Fatalf("overlapping read should see the pre-write total, got %+v", b)
	}
	store.read = nil
	c.Wait()

	b, err := l.Balance(ctx, 1, from, to)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if !b.Expense.Equal(money("5")) {
		t.Errorf("expense = %s, want 5", b.Expense)
	}
}

func TestCreateTransaction_RejectsAmountAboveColumnPrecision(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewLedger(mocks.NewMockStore(ctrl), nil, nil)

	for _, amount := range []string{"1000000000000", "9999999999.999"} {
		_, err := l.CreateTransaction(ctx, 1, domain.NewTransaction{Amount: money(amount), Date: day, Type: domain.Income, Category: "Salary"})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("amount %s: err = %v, want ErrInvalidInput", amount, err)
		}
	}
}
