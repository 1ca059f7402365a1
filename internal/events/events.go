// Package events publishes settlement notifications to a message broker.
package events

import (
	"context"
	"time"

	"github.com/baharkarakas/ppob-wallet/internal/models"
	"github.com/baharkarakas/ppob-wallet/internal/money"
)

// SettlementEvent describes one committed top-up or payment.
type SettlementEvent struct {
	InvoiceNumber string                 `json:"invoice_number"`
	Type          models.TransactionType `json:"transaction_type"`
	Email         string                 `json:"email"`
	Amount        money.Money            `json:"amount"`
	BalanceAfter  money.Money            `json:"balance_after"`
	ServiceCode   string                 `json:"service_code,omitempty"`
	CreatedOn     time.Time              `json:"created_on"`
}

type Publisher interface {
	Publish(ctx context.Context, ev SettlementEvent) error
	Close() error
}

// Noop discards events. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, SettlementEvent) error { return nil }
func (Noop) Close() error                                   { return nil }
