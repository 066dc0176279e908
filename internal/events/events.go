// Package events announces ledger writes so dashboards and other instances
// can refresh their views of a user's statistics.
package events

import (
	"context"
	"encoding/json"
	"time"

	"finance-tracker/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionCreated = "transaction.created"
	TransactionDeleted = "transaction.deleted"
)

type Publisher interface {
	PublishTransactionCreated(ctx context.Context, t domain.Transaction) error
	PublishTransactionDeleted(ctx context.Context, t domain.Transaction) error
	Close() error
}

// TransactionMessage is the JSON body of every transaction event.
type TransactionMessage struct {
	Event         string                 `json:"event"`
	UserID        int64                  `json:"user_id"`
	TransactionID uuid.UUID              `json:"transaction_id"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	Date          time.Time              `json:"date"`
	Timestamp     time.Time              `json:"timestamp"`
}

func NewTransactionMessage(event string, t domain.Transaction) *TransactionMessage {
	return &TransactionMessage{
		Event:         event,
		UserID:        t.UserID,
		TransactionID: t.ID,
		Type:          t.Type,
		Amount:        t.Amount,
		Date:          t.Date,
		Timestamp:     time.Now().UTC(),
	}
}

func (m *TransactionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionMessageFromJSON(data []byte) (*TransactionMessage, error) {
	var msg TransactionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) PublishTransactionCreated(context.Context, domain.Transaction) error { return nil }
func (Noop) PublishTransactionDeleted(context.Context, domain.Transaction) error { return nil }
func (Noop) Close() error                                                        { return nil }
