package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baharkarakas/ppob-wallet/internal/api/httpx"
	"github.com/baharkarakas/ppob-wallet/internal/api/validate"
	"github.com/baharkarakas/ppob-wallet/internal/money"
	"github.com/baharkarakas/ppob-wallet/internal/services"
)

const (
	defaultHistoryOffset = 0
	defaultHistoryLimit  = 10
)

type balanceResp struct {
	Balance money.Money `json:"balance"`
}

type TransactionHandler struct {
	base
	balances *services.BalanceService
	txns     *services.TransactionService
}

func NewTransactionHandler(b *services.BalanceService, t *services.TransactionService, log *slog.Logger) *TransactionHandler {
	return &TransactionHandler{base: base{log: log}, balances: b, txns: t}
}

func (h *TransactionHandler) Balance(w http.ResponseWriter, r *http.Request) {
	c, ok := h.claims(w, r)
	if !ok {
		return
	}
	bal, err := h.balances.Current(r.Context(), c.Email)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w, "Get Balance Berhasil", balanceResp{Balance: bal})
}

func (h *TransactionHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	c, ok := h.claims(w, r)
	if !ok {
		return
	}
	var req validate.TopUpRequest
	if err := validate.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	bal, err := h.txns.TopUp(r.Context(), c.Email, *req.TopUpAmount)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w, "Top Up Balance berhasil", balanceResp{Balance: bal})
}

func (h *TransactionHandler) Pay(w http.ResponseWriter, r *http.Request) {
	c, ok := h.claims(w, r)
	if !ok {
		return
	}
	var req validate.PaymentRequest
	if err := validate.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	rc, err := h.txns.Pay(r.Context(), c.Email, req.ServiceCode)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w, "Transaksi berhasil", rc)
}

func (h *TransactionHandler) History(w http.ResponseWriter, r *http.Request) {
	c, ok := h.claims(w, r)
	if !ok {
		return
	}
	offset, err := validate.QueryInt(r, "offset", defaultHistoryOffset)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	limit, err := validate.QueryInt(r, "limit", defaultHistoryLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := h.txns.History(r.Context(), c.Email, offset, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w, "Get History Berhasil", page)
}
