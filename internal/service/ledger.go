// Package service holds the ledger operations shared by the HTTP API and the
// Telegram bot. Payloads are validated here, before any storage access.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finance-tracker/internal/cache"
	"finance-tracker/internal/currency"
	"finance-tracker/internal/domain"
	"finance-tracker/internal/events"
	"finance-tracker/internal/storage"
	"finance-tracker/internal/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Ledger struct {
	store  storage.Store
	cache  *cache.StatsCache
	events events.Publisher
	now    func() time.Time
}

// NewLedger wires the ledger. stats may be nil to disable caching and pub may
// be nil when no broker is configured.
func NewLedger(store storage.Store, stats *cache.StatsCache, pub events.Publisher) *Ledger {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Ledger{
		store:  store,
		cache:  stats,
		events: pub,
		now:    time.Now,
	}
}

// TransactionView is a transaction with its amount rendered in the user's currency.
type TransactionView struct {
	domain.Transaction
	FormattedAmount string `json:"formatted_amount"`
}

func invalid(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
}

// === transactions ===

// CreateTransaction records one transaction and its day and month aggregates.
func (l *Ledger) CreateTransaction(ctx context.Context, userID int64, in domain.NewTransaction) (*domain.Transaction, error) {
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	if err := validator.Struct(in); err != nil {
		return nil, invalid(err)
	}
	// NUMERIC(14,2)
	in.Amount = in.Amount.Round(2)
	if !in.Amount.IsPositive() {
		return nil, invalid(fmt.Errorf("Amount must be greater than 0"))
	}
	if in.Amount.GreaterThan(domain.MaxAmount) {
		return nil, invalid(fmt.Errorf("Amount must be at most %s", domain.MaxAmount))
	}

	t, err := l.store.CreateTransaction(ctx, userID, in)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	slog.Info("Transaction created", "user_id", userID, "id", t.ID, "type", t.Type, "category", t.Category)
	l.invalidate(userID)
	if err := l.events.PublishTransactionCreated(ctx, *t); err != nil {
		slog.Error("Failed to publish transaction event", "error", err, "user_id", userID, "id", t.ID)
	}
	return t, nil
}

func (l *Ledger) DeleteTransaction(ctx context.Context, userID int64, id uuid.UUID) error {
	t, err := l.store.DeleteTransaction(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	slog.Info("Transaction deleted", "user_id", userID, "id", id)
	l.invalidate(userID)
	if err := l.events.PublishTransactionDeleted(ctx, *t); err != nil {
		slog.Error("Failed to publish transaction event", "error", err, "user_id", userID, "id", id)
	}
	return nil
}

func (l *Ledger) ListTransactions(ctx context.Context, userID int64, from, to time.Time) ([]TransactionView, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	settings, err := l.store.GetOrCreateSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	txs, err := l.store.ListTransactions(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	views := make([]TransactionView, 0, len(txs))
	for _, t := range txs {
		views = append(views, TransactionView{
			Transaction:     t,
			FormattedAmount: currency.Format(settings.Currency, t.Amount),
		})
	}
	return views, nil
}

// === categories ===

func (l *Ledger) CreateCategory(ctx context.Context, userID int64, in domain.NewCategory) (*domain.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	if err := validator.Struct(in); err != nil {
		return nil, invalid(err)
	}

	c, err := l.store.CreateCategory(ctx, userID, in)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	slog.Info("Category created", "user_id", userID, "name", c.Name, "type", c.Type)
	return c, nil
}

// ListCategories lists the user's categories; an empty t lists both types.
func (l *Ledger) ListCategories(ctx context.Context, userID int64, t domain.TransactionType) ([]domain.Category, error) {
	if t != "" && !t.Valid() {
		return nil, invalid(fmt.Errorf("type must be income or expense"))
	}
	cats, err := l.store.ListCategories(ctx, userID, t)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (l *Ledger) DeleteCategory(ctx context.Context, userID int64, name string, t domain.TransactionType) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid(fmt.Errorf("name is required"))
	}
	if !t.Valid() {
		return invalid(fmt.Errorf("type must be income or expense"))
	}
	if err := l.store.DeleteCategory(ctx, userID, name, t); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	slog.Info("Category deleted", "user_id", userID, "name", name, "type", t)
	return nil
}

// === settings ===

func (l *Ledger) GetSettings(ctx context.Context, userID int64) (*domain.UserSettings, error) {
	us, err := l.store.GetOrCreateSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return us, nil
}

func (l *Ledger) UpdateCurrency(ctx context.Context, userID int64, code string) (*domain.UserSettings, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := currency.Validate(code); err != nil {
		return nil, invalid(err)
	}
	us, err := l.store.UpdateCurrency(ctx, userID, code)
	if err != nil {
		return nil, fmt.Errorf("update currency: %w", err)
	}
	slog.Info("Currency updated", "user_id", userID, "currency", code)
	return us, nil
}

// === statistics ===

func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return invalid(fmt.Errorf("from and to are required"))
	}
	if from.After(to) {
		return invalid(fmt.Errorf("from must not be after to"))
	}
	if days := int(to.Sub(from).Hours() / 24); days > domain.MaxDateRangeDays {
		return invalid(fmt.Errorf("the selected date range is too big, max allowed is %d days", domain.MaxDateRangeDays))
	}
	return nil
}

func rangeKey(prefix string, from, to time.Time) string {
	return prefix + ":" + from.UTC().Format(time.RFC3339) + ":" + to.UTC().Format(time.RFC3339)
}

func (l *Ledger) Balance(ctx context.Context, userID int64, from, to time.Time) (domain.Balance, error) {
	if err := validateRange(from, to); err != nil {
		return domain.Balance{}, err
	}

	key := rangeKey("balance", from, to)
	gen := l.generation(userID)
	if v, ok := l.cached(userID, key); ok {
		if b, ok := v.(domain.Balance); ok {
			return b, nil
		}
	}

	b, err := l.store.Balance(ctx, userID, from, to)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("balance: %w", err)
	}
	l.remember(userID, gen, key, b)
	return b, nil
}

func (l *Ledger) CategoryStats(ctx context.Context, userID int64, from, to time.Time) ([]domain.CategoryStat, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	key := rangeKey("categories", from, to)
	gen := l.generation(userID)
	if v, ok := l.cached(userID, key); ok {
		if stats, ok := v.([]domain.CategoryStat); ok {
			return stats, nil
		}
	}

	stats, err := l.store.CategoryStats(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	l.remember(userID, gen, key, stats)
	return stats, nil
}

// HistoryPeriods returns the years that have history, or the current year.
func (l *Ledger) HistoryPeriods(ctx context.Context, userID int64) ([]int, error) {
	years, err := l.store.HistoryYears(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("history years: %w", err)
	}
	if len(years) == 0 {
		return []int{l.now().UTC().Year()}, nil
	}
	return years, nil
}

type historyQuery struct {
	Timeframe string `validate:"required,timeframe"`
	Year      int    `validate:"gte=1970,lte=9999"`
	Month     int    `validate:"gte=0,lte=12"`
}

// History returns chart points: twelve months for a year, or every day of a
// month. Periods without aggregate rows are zero.
func (l *Ledger) History(ctx context.Context, userID int64, timeframe domain.Timeframe, period domain.Period) ([]domain.HistoryPoint, error) {
	q := historyQuery{Timeframe: string(timeframe), Year: period.Year, Month: period.Month}
	if err := validator.Struct(q); err != nil {
		return nil, invalid(err)
	}
	if timeframe == domain.TimeframeMonth && period.Month == 0 {
		return nil, invalid(fmt.Errorf("Month is required for monthly history"))
	}

	key := fmt.Sprintf("history:%s:%d:%d", timeframe, period.Year, period.Month)
	gen := l.generation(userID)
	if v, ok := l.cached(userID, key); ok {
		if points, ok := v.([]domain.HistoryPoint); ok {
			return points, nil
		}
	}

	var points []domain.HistoryPoint
	switch timeframe {
	case domain.TimeframeYear:
		rows, err := l.store.YearHistory(ctx, userID, period.Year)
		if err != nil {
			return nil, fmt.Errorf("year history: %w", err)
		}
		byMonth := make(map[int]domain.YearHistory, len(rows))
		for _, r := range rows {
			byMonth[r.Month] = r
		}
		points = make([]domain.HistoryPoint, 0, 12)
		for m := 1; m <= 12; m++ {
			p := domain.HistoryPoint{Year: period.Year, Month: m, Income: decimal.Zero, Expense: decimal.Zero}
			if r, ok := byMonth[m]; ok {
				p.Income, p.Expense = r.Income, r.Expense
			}
			points = append(points, p)
		}

	case domain.TimeframeMonth:
		rows, err := l.store.MonthHistory(ctx, userID, period.Year, period.Month)
		if err != nil {
			return nil, fmt.Errorf("month history: %w", err)
		}
		byDay := make(map[int]domain.MonthHistory, len(rows))
		for _, r := range rows {
			byDay[r.Day] = r
		}
		days := domain.DaysIn(period.Year, period.Month)
		points = make([]domain.HistoryPoint, 0, days)
		for d := 1; d <= days; d++ {
			p := domain.HistoryPoint{Year: period.Year, Month: period.Month, Day: d, Income: decimal.Zero, Expense: decimal.Zero}
			if r, ok := byDay[d]; ok {
				p.Income, p.Expense = r.Income, r.Expense
			}
			points = append(points, p)
		}
	}

	l.remember(userID, gen, key, points)
	return points, nil
}

// === cache helpers ===

// generation must be read before the store so a write that commits during
// the read invalidates the value about to be cached.
func (l *Ledger) generation(userID int64) uint64 {
	if l.cache == nil {
		return 0
	}
	return l.cache.Generation(userID)
}

func (l *Ledger) cached(userID int64, key string) (any, bool) {
	if l.cache == nil {
		return nil, false
	}
	return l.cache.Get(userID, key)
}

func (l *Ledger) remember(userID int64, gen uint64, key string, v any) {
	if l.cache != nil {
		l.cache.Set(userID, gen, key, v)
	}
}

func (l *Ledger) invalidate(userID int64) {
	if l.cache != nil {
		l.cache.InvalidateUser(userID)
	}
}
