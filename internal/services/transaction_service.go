package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/ppob-wallet/internal/apperr"
	"github.com/baharkarakas/ppob-wallet/internal/events"
	"github.com/baharkarakas/ppob-wallet/internal/metrics"
	"github.com/baharkarakas/ppob-wallet/internal/models"
	"github.com/baharkarakas/ppob-wallet/internal/money"
	repo "github.com/baharkarakas/ppob-wallet/internal/repository"
	"github.com/baharkarakas/ppob-wallet/internal/worker"
)

const (
	topUpDescription = "Top Up balance"
	publishTimeout   = 5 * time.Second
)

type TransactionService struct {
	ledger repo.Ledger
	pub    events.Publisher
	wp     *worker.Pool
	log    *slog.Logger
	now    func() time.Time
}

// NewTransactionService wires the settlement engine. pub and wp may be nil, in
// which case no events are sent.
func NewTransactionService(ledger repo.Ledger, pub events.Publisher, wp *worker.Pool, log *slog.Logger) *TransactionService {
	if pub == nil {
		pub = events.Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &TransactionService{ledger: ledger, pub: pub, wp: wp, log: log, now: time.Now}
}

// NewInvoiceNumber is INV, the millisecond timestamp, and a random suffix.
func NewInvoiceNumber(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "INV" + strconv.FormatInt(t.UnixMilli(), 10) + "-" + strings.ToUpper(suffix)
}

// ----------------- TOP UP -----------------

// TopUp credits amount with an additive update and records a TOPUP row in the
// same unit of work. It returns the new balance. Amounts that storage would
// round or overflow are rejected up front.
func (s *TransactionService) TopUp(ctx context.Context, email string, amount money.Money) (money.Money, error) {
	if !amount.IsPositive() || !amount.Storable() {
		s.failed(models.TxnTopUp, ErrInvalidAmount)
		return money.Money{}, ErrInvalidAmount
	}

	var (
		balance money.Money
		rec     models.Transaction
	)
	err := s.ledger.WithTx(ctx, func(tx repo.LedgerTx) error {
		userID, newBal, err := tx.Credit(ctx, email, amount)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		if errors.Is(err, repo.ErrOutOfRange) {
			return ErrInvalidAmount
		}
		if err != nil {
			return fmt.Errorf("credit: %w", err)
		}

		rec, err = tx.Append(ctx, models.Transaction{
			InvoiceNumber: NewInvoiceNumber(s.now()),
			Type:          models.TxnTopUp,
			Description:   topUpDescription,
			TotalAmount:   amount,
			UserID:        userID,
		})
		if err != nil {
			return fmt.Errorf("append topup: %w", err)
		}
		balance = newBal
		return nil
	})
	if err != nil {
		s.failed(models.TxnTopUp, err)
		return money.Money{}, err
	}

	metrics.SettlementsTotal.WithLabelValues(string(models.TxnTopUp)).Inc()
	s.emit(events.SettlementEvent{
		InvoiceNumber: rec.InvoiceNumber,
		Type:          models.TxnTopUp,
		Email:         email,
		Amount:        amount,
		BalanceAfter:  balance,
		CreatedOn:     rec.CreatedOn,
	})
	return balance, nil
}

// ----------------- PAYMENT -----------------

// Pay charges the service tariff. The pre-check gives the common case a clean
// error; the guarded decrement is what keeps concurrent payments from
// overdrawing.
func (s *TransactionService) Pay(ctx context.Context, email, serviceCode string) (models.Receipt, error) {
	var (
		receipt models.Receipt
		balance money.Money
	)
	err := s.ledger.WithTx(ctx, func(tx repo.LedgerTx) error {
		svc, err := tx.ServiceByCode(ctx, serviceCode)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrServiceNotFound
		}
		if err != nil {
			return fmt.Errorf("service lookup: %w", err)
		}

		current, err := tx.Balance(ctx, email)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("read balance: %w", err)
		}
		if current.LessThan(svc.Tariff) {
			return ErrInsufficientBalance
		}

		userID, newBal, err := tx.Debit(ctx, email, svc.Tariff)
		if errors.Is(err, repo.ErrInsufficientFunds) {
			return ErrInsufficientBalance
		}
		if err != nil {
			return fmt.Errorf("debit: %w", err)
		}

		serviceID := svc.ID
		rec, err := tx.Append(ctx, models.Transaction{
			InvoiceNumber: NewInvoiceNumber(s.now()),
			Type:          models.TxnPayment,
			Description:   svc.Name,
			TotalAmount:   svc.Tariff,
			UserID:        userID,
			ServiceID:     &serviceID,
		})
		if err != nil {
			return fmt.Errorf("append payment: %w", err)
		}

		receipt = models.Receipt{
			InvoiceNumber: rec.InvoiceNumber,
			ServiceCode:   svc.Code,
			ServiceName:   svc.Name,
			Type:          models.TxnPayment,
			TotalAmount:   svc.Tariff,
			CreatedOn:     rec.CreatedOn,
		}
		balance = newBal
		return nil
	})
	if err != nil {
		s.failed(models.TxnPayment, err)
		return models.Receipt{}, err
	}

	metrics.SettlementsTotal.WithLabelValues(string(models.TxnPayment)).Inc()
	s.emit(events.SettlementEvent{
		InvoiceNumber: receipt.InvoiceNumber,
		Type:          models.TxnPayment,
		Email:         email,
		Amount:        receipt.TotalAmount,
		BalanceAfter:  balance,
		ServiceCode:   receipt.ServiceCode,
		CreatedOn:     receipt.CreatedOn,
	})
	return receipt, nil
}

// ----------------- HISTORY -----------------

// History returns one window of the user's ledger, newest first.
func (s *TransactionService) History(ctx context.Context, email string, offset, limit int) (models.HistoryPage, error) {
	if offset < 0 {
		return models.HistoryPage{}, ErrInvalidOffset
	}
	if limit < 1 {
		return models.HistoryPage{}, ErrInvalidLimit
	}

	userID, err := s.ledger.UserID(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return models.HistoryPage{}, ErrUserNotFound
	}
	if err != nil {
		return models.HistoryPage{}, err
	}

	records, err := s.ledger.History(ctx, userID, limit, offset)
	if err != nil {
		return models.HistoryPage{}, err
	}
	if records == nil {
		records = []models.Transaction{}
	}
	return models.HistoryPage{Offset: offset, Limit: limit, Records: records}, nil
}

// ----------------- Helpers -----------------

func (s *TransactionService) failed(t models.TransactionType, err error) {
	reason := "internal"
	if e, ok := apperr.As(err); ok {
		reason = e.Kind.String()
	}
	metrics.SettlementsFailed.WithLabelValues(string(t), reason).Inc()
}

// emit hands the event to the worker pool. Publication never affects the
// settlement that produced it.
func (s *TransactionService) emit(ev events.SettlementEvent) {
	if s.wp == nil {
		return
	}
	queued := s.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.pub.Publish(ctx, ev); err != nil {
			metrics.EventsPublished.WithLabelValues("error").Inc()
			s.log.Warn("settlement event not published", "invoice_number", ev.InvoiceNumber, "err", err)
			return
		}
		metrics.EventsPublished.WithLabelValues("ok").Inc()
	})
	if !queued {
		metrics.EventsPublished.WithLabelValues("dropped").Inc()
	}
}
