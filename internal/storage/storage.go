// internal/storage/storage.go
package storage

import (
	"context"
	"time"

	"finance-tracker/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks finance-tracker/internal/storage Store

type TransactionStorage interface {
	// CreateTransaction inserts the transaction and upserts its day and month
	// aggregate rows atomically. Returns domain.ErrCategoryNotFound when the
	// user has no category with that name; nothing is written in that case.
	CreateTransaction(ctx context.Context, userID int64, in domain.NewTransaction) (*domain.Transaction, error)
	// DeleteTransaction removes the transaction and subtracts it from its
	// aggregate rows atomically.
	DeleteTransaction(ctx context.Context, userID int64, id uuid.UUID) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID int64, from, to time.Time) ([]domain.Transaction, error)
}

type CategoryStorage interface {
	CreateCategory(ctx context.Context, userID int64, in domain.NewCategory) (*domain.Category, error)
	// ListCategories lists all categories when t is empty.
	ListCategories(ctx context.Context, userID int64, t domain.TransactionType) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, userID int64, name string, t domain.TransactionType) error
}

type SettingsStorage interface {
	GetOrCreateSettings(ctx context.Context, userID int64) (*domain.UserSettings, error)
	UpdateCurrency(ctx context.Context, userID int64, currency string) (*domain.UserSettings, error)
}

type StatsStorage interface {
	Balance(ctx context.Context, userID int64, from, to time.Time) (domain.Balance, error)
	CategoryStats(ctx context.Context, userID int64, from, to time.Time) ([]domain.CategoryStat, error)
	// HistoryYears returns the distinct years with aggregate rows, ascending.
	HistoryYears(ctx context.Context, userID int64) ([]int, error)
	MonthHistory(ctx context.Context, userID int64, year, month int) ([]domain.MonthHistory, error)
	YearHistory(ctx context.Context, userID int64, year int) ([]domain.YearHistory, error)
}

type Store interface {
	TransactionStorage
	CategoryStorage
	SettingsStorage
	StatsStorage
}
