// internal/domain/models.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

type Timeframe string

const (
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

// MaxDateRangeDays bounds the span of balance and category statistics queries.
const MaxDateRangeDays = 90

const DefaultCurrency = "USD"

// MaxAmount is the largest value a NUMERIC(14,2) amount column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Period selects a history window. Month is 1..12 and ignored for yearly history.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type Category struct {
	UserID    int64           `json:"-"`
	Name      string          `json:"name"`
	Icon      string          `json:"icon"`
	Type      TransactionType `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}

type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	UserID       int64           `json:"-"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	Type         TransactionType `json:"type"`
	Category     string          `json:"category"`
	CategoryIcon string          `json:"category_icon"`
	CreatedAt    time.Time       `json:"created_at"`
}

// MonthHistory is the per-day aggregate row, keyed by (user, day, month, year).
type MonthHistory struct {
	UserID  int64           `json:"-"`
	Day     int             `json:"day"`
	Month   int             `json:"month"`
	Year    int             `json:"year"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// YearHistory is the per-month aggregate row, keyed by (user, month, year).
type YearHistory struct {
	UserID  int64           `json:"-"`
	Month   int             `json:"month"`
	Year    int             `json:"year"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type UserSettings struct {
	UserID   int64  `json:"-"`
	Currency string `json:"currency"`
}

// NewTransaction is the payload for recording a transaction.
type NewTransaction struct {
	Amount      decimal.Decimal `json:"amount" validate:"dgt0,dlte=9999999999.99"`
	Date        time.Time       `json:"date" validate:"required"`
	Description string          `json:"description" validate:"max=255"`
	Type        TransactionType `json:"type" validate:"required,txtype"`
	Category    string          `json:"category" validate:"required,notblank"`
}

type NewCategory struct {
	Name string          `json:"name" validate:"required,notblank,min=3,max=20"`
	Icon string          `json:"icon" validate:"max=20"`
	Type TransactionType `json:"type" validate:"required,txtype"`
}

type Balance struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

func (b Balance) Net() decimal.Decimal {
	return b.Income.Sub(b.Expense)
}

type CategoryStat struct {
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Icon     string          `json:"category_icon"`
	Amount   decimal.Decimal `json:"amount"`
}

// HistoryPoint is one bar of the history chart. Day is zero for yearly history.
type HistoryPoint struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Day     int             `json:"day,omitempty"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
