package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/ppob-wallet/internal/models"
	"github.com/baharkarakas/ppob-wallet/internal/money"
)

func TestSettlementEventJSON(t *testing.T) {
	ev := SettlementEvent{
		InvoiceNumber: "INV1700000000000-0a1b2c3d",
		Type:          models.TxnPayment,
		Email:         "user@nutech.test",
		Amount:        money.FromInt(10000),
		BalanceAfter:  money.MustParse("500.5"),
		ServiceCode:   "PLN",
		CreatedOn:     time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"invoice_number":"INV1700000000000-0a1b2c3d",
		"transaction_type":"PAYMENT",
		"email":"user@nutech.test",
		"amount":10000,
		"balance_after":500.5,
		"service_code":"PLN",
		"created_on":"2025-01-02T03:04:05Z"
	}`, string(b))
}

func TestNewAMQPRequiresURL(t *testing.T) {
	_, err := NewAMQP("", "q")
	assert.Error(t, err)
	_, err = NewAMQP("amqp://localhost", " ")
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), SettlementEvent{}))
	assert.NoError(t, p.Close())
}
