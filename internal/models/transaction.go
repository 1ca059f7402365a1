package models

import (
	"time"

	"github.com/baharkarakas/ppob-wallet/internal/money"
)

type TransactionType string

const (
	TxnTopUp   TransactionType = "TOPUP"
	TxnPayment TransactionType = "PAYMENT"
)

// Transaction is an immutable ledger row. TotalAmount is always positive; the
// direction comes from Type.
type Transaction struct {
	ID            int64           `json:"-"`
	InvoiceNumber string          `json:"invoice_number"`
	Type          TransactionType `json:"transaction_type"`
	Description   string          `json:"description"`
	TotalAmount   money.Money     `json:"total_amount"`
	UserID        int64           `json:"-"`
	ServiceID     *int64          `json:"-"`
	CreatedOn     time.Time       `json:"created_on"`
}

// Receipt is returned by a successful payment.
type Receipt struct {
	InvoiceNumber string          `json:"invoice_number"`
	ServiceCode   string          `json:"service_code"`
	ServiceName   string          `json:"service_name"`
	Type          TransactionType `json:"transaction_type"`
	TotalAmount   money.Money     `json:"total_amount"`
	CreatedOn     time.Time       `json:"created_on"`
}

// HistoryPage is one offset/limit window of a user's ledger.
type HistoryPage struct {
	Offset  int           `json:"offset"`
	Limit   int           `json:"limit"`
	Records []Transaction `json:"records"`
}
