// Package memory is an in-process storage.Store. Every write holds one mutex,
// so the transaction insert and both aggregate upserts are applied together.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"finance-tracker/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type categoryKey struct {
	userID int64
	name   string
}

type dayKey struct {
	userID           int64
	day, month, year int
}

type monthKey struct {
	userID      int64
	month, year int
}

type Store struct {
	mu           sync.RWMutex
	categories   map[categoryKey]domain.Category
	transactions map[uuid.UUID]domain.Transaction
	days         map[dayKey]domain.MonthHistory
	months       map[monthKey]domain.YearHistory
	settings     map[int64]domain.UserSettings
	now          func() time.Time
}

func New() *Store {
	return &Store{
		categories:   make(map[categoryKey]domain.Category),
		transactions: make(map[uuid.UUID]domain.Transaction),
		days:         make(map[dayKey]domain.MonthHistory),
		months:       make(map[monthKey]domain.YearHistory),
		settings:     make(map[int64]domain.UserSettings),
		now:          time.Now,
	}
}

func (s *Store) CreateTransaction(_ context.Context, userID int64, in domain.NewTransaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.categories[categoryKey{userID, in.Category}]
	if !ok {
		return nil, domain.ErrCategoryNotFound
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
		CreatedAt:    s.now(),
	}
	s.transactions[t.ID] = t

	income, expense := domain.Increments(t.Type, t.Amount)
	s.apply(userID, t.Date, income, expense)
	return &t, nil
}

func (s *Store) DeleteTransaction(_ context.Context, userID int64, id uuid.UUID) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	delete(s.transactions, id)

	income, expense := domain.Increments(t.Type, t.Amount)
	s.apply(userID, t.Date, income.Neg(), expense.Neg())
	return &t, nil
}

// apply upserts the day and month aggregate rows. Caller holds s.mu.
func (s *Store) apply(userID int64, date time.Time, income, expense decimal.Decimal) {
	day, month, year := domain.CalendarKey(date)

	dk := dayKey{userID, day, month, year}
	d, ok := s.days[dk]
	if !ok {
		d = domain.MonthHistory{UserID: userID, Day: day, Month: month, Year: year, Income: decimal.Zero, Expense: decimal.Zero}
	}
	d.Income = d.Income.Add(income)
	d.Expense = d.Expense.Add(expense)
	s.days[dk] = d

	mk := monthKey{userID, month, year}
	m, ok := s.months[mk]
	if !ok {
		m = domain.YearHistory{UserID: userID, Month: month, Year: year, Income: decimal.Zero, Expense: decimal.Zero}
	}
	m.Income = m.Income.Add(income)
	m.Expense = m.Expense.Add(expense)
	s.months[mk] = m
}

func (s *Store) ListTransactions(_ context.Context, userID int64, from, to time.Time) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID && inRange(t.Date, from, to) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, userID int64, in domain.NewCategory) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := categoryKey{userID, in.Name}
	if _, exists := s.categories[key]; exists {
		return nil, domain.ErrCategoryExists
	}
	c := domain.Category{UserID: userID, Name: in.Name, Icon: in.Icon, Type: in.Type, CreatedAt: s.now()}
	s.categories[key] = c
	return &c, nil
}

func (s *Store) ListCategories(_ context.Context, userID int64, t domain.TransactionType) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Category
	for k, c := range s.categories {
		if k.userID == userID && (t == "" || c.Type == t) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) DeleteCategory(_ context.Context, userID int64, name string, t domain.TransactionType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := categoryKey{userID, name}
	c, ok := s.categories[key]
	if !ok || c.Type != t {
		return domain.ErrCategoryNotFound
	}
	delete(s.categories, key)
	return nil
}

func (s *Store) GetOrCreateSettings(_ context.Context, userID int64) (*domain.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	us, ok := s.settings[userID]
	if !ok {
		us = domain.UserSettings{UserID: userID, Currency: domain.DefaultCurrency}
		s.settings[userID] = us
	}
	return &us, nil
}

func (s *Store) UpdateCurrency(_ context.Context, userID int64, currency string) (*domain.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	us := domain.UserSettings{UserID: userID, Currency: currency}
	s.settings[userID] = us
	return &us, nil
}

func (s *Store) Balance(_ context.Context, userID int64, from, to time.Time) (domain.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := domain.Balance{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range s.transactions {
		if t.UserID != userID || !inRange(t.Date, from, to) {
			continue
		}
		income, expense := domain.Increments(t.Type, t.Amount)
		b.Income = b.Income.Add(income)
		b.Expense = b.Expense.Add(expense)
	}
	return b, nil
}

func (s *Store) CategoryStats(_ context.Context, userID int64, from, to time.Time) ([]domain.CategoryStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type statKey struct {
		t          domain.TransactionType
		name, icon string
	}
	totals := make(map[statKey]decimal.Decimal)
	for _, t := range s.transactions {
		if t.UserID != userID || !inRange(t.Date, from, to) {
			continue
		}
		k := statKey{t.Type, t.Category, t.CategoryIcon}
		totals[k] = totals[k].Add(t.Amount)
	}

	out := make([]domain.CategoryStat, 0, len(totals))
	for k, sum := range totals {
		out = append(out, domain.CategoryStat{Type: k.t, Category: k.name, Icon: k.icon, Amount: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (s *Store) HistoryYears(_ context.Context, userID int64) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int]struct{})
	for k := range s.days {
		if k.userID == userID {
			seen[k.year] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

func (s *Store) MonthHistory(_ context.Context, userID int64, year, month int) ([]domain.MonthHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.MonthHistory
	for k, h := range s.days {
		if k.userID == userID && k.year == year && k.month == month {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (s *Store) YearHistory(_ context.Context, userID int64, year int) ([]domain.YearHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.YearHistory
	for k, h := range s.months {
		if k.userID == userID && k.year == year {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
