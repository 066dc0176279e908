// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"finance-tracker/internal/domain"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

// Connect opens a pool and waits for the database to answer a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	err = retry.Do(
		func() error {
			return pool.Ping(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Database not ready, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// === TransactionStorage ===

const upsertMonthHistory = `
	INSERT INTO month_history (user_id, day, month, year, income, expense)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id, day, month, year) DO UPDATE
	SET income = month_history.income + EXCLUDED.income,
	    expense = month_history.expense + EXCLUDED.expense
`

const upsertYearHistory = `
	INSERT INTO year_history (user_id, month, year, income, expense)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (user_id, month, year) DO UPDATE
	SET income = year_history.income + EXCLUDED.income,
	    expense = year_history.expense + EXCLUDED.expense
`

func (s *Storage) CreateTransaction(ctx context.Context, userID int64, in domain.NewTransaction) (*domain.Transaction, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var cat domain.Category
	err = tx.QueryRow(ctx, `
		SELECT name, icon FROM categories WHERE user_id = $1 AND name = $2
	`, userID, in.Category).Scan(&cat.Name, &cat.Icon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	t := domain.Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		Amount:       in.Amount,
		Date:         in.Date.UTC(),
		Description:  in.Description,
		Type:         in.Type,
		Category:     cat.Name,
		CategoryIcon: cat.Icon,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (id, user_id, amount, date, description, type, category, category_icon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, t.ID, userID, t.Amount, t.Date, t.Description, string(t.Type), t.Category, t.CategoryIcon).Scan(&t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	income, expense := domain.Increments(t.Type, t.Amount)
	day, month, year := domain.CalendarKey(t.Date)

	if _, err := tx.Exec(ctx, upsertMonthHistory, userID, day, month, year, income, expense); err != nil {
		return nil, fmt.Errorf("upsert month history: %w", err)
	}
	if _, err := tx.Exec(ctx, upsertYearHistory, userID, month, year, income, expense); err != nil {
		return nil, fmt.Errorf("upsert year history: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	slog.Debug("CreateTransaction completed", "user_id", userID, "id", t.ID, "type", t.Type)
	return &t, nil
}

func (s *Storage) DeleteTransaction(ctx context.Context, userID int64, id uuid.UUID) (*domain.Transaction, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	t := domain.Transaction{ID: id, UserID: userID}
	var txType string
	err = tx.QueryRow(ctx, `
		DELETE FROM transactions
		WHERE id = $1 AND user_id = $2
		RETURNING amount, date, description, type, category, category_icon, created_at
	`, id, userID).Scan(&t.Amount, &t.Date, &t.Description, &txType, &t.Category, &t.CategoryIcon, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("delete transaction: %w", err)
	}
	t.Type = domain.TransactionType(txType)

	income, expense := domain.Increments(t.Type, t.Amount)
	day, month, year := domain.CalendarKey(t.Date)

	_, err = tx.Exec(ctx, `
		UPDATE month_history
		SET income = income - $5, expense = expense - $6
		WHERE user_id = $1 AND day = $2 AND month = $3 AND year = $4
	`, userID, day, month, year, income, expense)
	if err != nil {
		return nil, fmt.Errorf("update month history: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE year_history
		SET income = income - $4, expense = expense - $5
		WHERE user_id = $1 AND month = $2 AND year = $3
	`, userID, month, year, income, expense)
	if err != nil {
		return nil, fmt.Errorf("update year history: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &t, nil
}

func (s *Storage) ListTransactions(ctx context.Context, userID int64, from, to time.Time) ([]domain.Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, amount, date, description, type, category, category_icon, created_at
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC, created_at DESC
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{UserID: userID}
		var txType string
		if err := rows.Scan(&t.ID, &t.Amount, &t.Date, &t.Description, &txType, &t.Category, &t.CategoryIcon, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = domain.TransactionType(txType)
		out = append(out, t)
	}
	return out, rows.Err()
}

// === CategoryStorage ===

func (s *Storage) CreateCategory(ctx context.Context, userID int64, in domain.NewCategory) (*domain.Category, error) {
	c := domain.Category{UserID: userID, Name: in.Name, Icon: in.Icon, Type: in.Type}
	err := s.db.QueryRow(ctx, `
		INSERT INTO categories (user_id, name, icon, type)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, userID, in.Name, in.Icon, string(in.Type)).Scan(&c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrCategoryExists
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &c, nil
}

func (s *Storage) ListCategories(ctx context.Context, userID int64, t domain.TransactionType) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, `
		SELECT name, icon, type, created_at
		FROM categories
		WHERE user_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY name
	`, userID, string(t))
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		c := domain.Category{UserID: userID}
		var catType string
		if err := rows.Scan(&c.Name, &c.Icon, &catType, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Type = domain.TransactionType(catType)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Storage) DeleteCategory(ctx context.Context, userID int64, name string, t domain.TransactionType) error {
	result, err := s.db.Exec(ctx, `
		DELETE FROM categories WHERE user_id = $1 AND name = $2 AND type = $3
	`, userID, name, string(t))
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// === SettingsStorage ===

func (s *Storage) GetOrCreateSettings(ctx context.Context, userID int64) (*domain.UserSettings, error) {
	us := domain.UserSettings{UserID: userID}
	err := s.db.QueryRow(ctx, `
		INSERT INTO user_settings (user_id, currency) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING currency
	`, userID, domain.DefaultCurrency).Scan(&us.Currency)
	if err != nil {
		return nil, fmt.Errorf("get or create settings: %w", err)
	}
	return &us, nil
}

func (s *Storage) UpdateCurrency(ctx context.Context, userID int64, currency string) (*domain.UserSettings, error) {
	us := domain.UserSettings{UserID: userID}
	err := s.db.QueryRow(ctx, `
		INSERT INTO user_settings (user_id, currency) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET currency = EXCLUDED.currency
		RETURNING currency
	`, userID, currency).Scan(&us.Currency)
	if err != nil {
		return nil, fmt.Errorf("update currency: %w", err)
	}
	return &us, nil
}

// === StatsStorage ===

func (s *Storage) Balance(ctx context.Context, userID int64, from, to time.Time) (domain.Balance, error) {
	b := domain.Balance{Income: decimal.Zero, Expense: decimal.Zero}
	rows, err := s.db.Query(ctx, `
		SELECT type, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		GROUP BY type
	`, userID, from, to)
	if err != nil {
		return b, fmt.Errorf("query balance: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var txType string
		var sum decimal.Decimal
		if err := rows.Scan(&txType, &sum); err != nil {
			return b, fmt.Errorf("scan balance: %w", err)
		}
		switch domain.TransactionType(txType) {
		case domain.Income:
			b.Income = sum
		case domain.Expense:
			b.Expense = sum
		}
	}
	return b, rows.Err()
}

func (s *Storage) CategoryStats(ctx context.Context, userID int64, from, to time.Time) ([]domain.CategoryStat, error) {
	rows, err := s.db.Query(ctx, `
		SELECT type, category, category_icon, SUM(amount) AS total
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		GROUP BY type, category, category_icon
		ORDER BY total DESC, category
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query category stats: %w", err)
	}
	defer rows.Close()

	var out []domain.CategoryStat
	for rows.Next() {
		var st domain.CategoryStat
		var txType string
		if err := rows.Scan(&txType, &st.Category, &st.Icon, &st.Amount); err != nil {
			return nil, fmt.Errorf("scan category stat: %w", err)
		}
		st.Type = domain.TransactionType(txType)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Storage) HistoryYears(ctx context.Context, userID int64) ([]int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT year FROM month_history WHERE user_id = $1 ORDER BY year
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query history years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (s *Storage) MonthHistory(ctx context.Context, userID int64, year, month int) ([]domain.MonthHistory, error) {
	rows, err := s.db.Query(ctx, `
		SELECT day, income, expense
		FROM month_history
		WHERE user_id = $1 AND year = $2 AND month = $3
		ORDER BY day
	`, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("query month history: %w", err)
	}
	defer rows.Close()

	var out []domain.MonthHistory
	for rows.Next() {
		h := domain.MonthHistory{UserID: userID, Month: month, Year: year}
		if err := rows.Scan(&h.Day, &h.Income, &h.Expense); err != nil {
			return nil, fmt.Errorf("scan month history: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Storage) YearHistory(ctx context.Context, userID int64, year int) ([]domain.YearHistory, error) {
	rows, err := s.db.Query(ctx, `
		SELECT month, income, expense
		FROM year_history
		WHERE user_id = $1 AND year = $2
		ORDER BY month
	`, userID, year)
	if err != nil {
		return nil, fmt.Errorf("query year history: %w", err)
	}
	defer rows.Close()

	var out []domain.YearHistory
	for rows.Next() {
		h := domain.YearHistory{UserID: userID, Year: year}
		if err := rows.Scan(&h.Month, &h.Income, &h.Expense); err != nil {
			return nil, fmt.Errorf("scan year history: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
