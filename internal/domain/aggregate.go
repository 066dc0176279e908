// internal/domain/aggregate.go
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryExists      = errors.New("category already exists")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Increments returns how much a transaction adds to the income and expense
// columns of its aggregate rows.
func Increments(t TransactionType, amount decimal.Decimal) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	switch t {
	case Income:
		income = amount
	case Expense:
		expense = amount
	}
	return income, expense
}

// CalendarKey returns the aggregate key of a date. Month is 1..12, always UTC.
func CalendarKey(date time.Time) (day, month, year int) {
	d := date.UTC()
	return d.Day(), int(d.Month()), d.Year()
}

// DaysIn returns the number of days of the given month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
