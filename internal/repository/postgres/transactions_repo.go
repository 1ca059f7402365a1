package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/ppob-wallet/internal/models"
	"github.com/baharkarakas/ppob-wallet/internal/money"
	"github.com/baharkarakas/ppob-wallet/internal/repository"
)

var (
	_ repository.Ledger   = (*transactionsRepo)(nil)
	_ repository.LedgerTx = (*ledgerTx)(nil)
)

type transactionsRepo struct{ pool *pgxpool.Pool }

// WithTx runs fn inside one pgx transaction. READ COMMITTED is enough because
// every balance change is a single guarded UPDATE.
func (r *transactionsRepo) WithTx(ctx context.Context, fn func(repository.LedgerTx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	// no-op once committed; releases the connection on every other path
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(&ledgerTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *transactionsRepo) UserID(ctx context.Context, email string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM users WHERE email=$1`, email).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	return id, err
}

func (r *transactionsRepo) History(ctx context.Context, userID int64, limit, offset int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, invoice_number, transaction_type, description, total_amount::text, user_id, service_id, created_on
		   FROM transactions
		  WHERE user_id=$1
		  ORDER BY created_on DESC, id DESC
		  LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Transaction{}
	for rows.Next() {
		var (
			t   models.Transaction
			amt string
		)
		if err := rows.Scan(&t.ID, &t.InvoiceNumber, &t.Type, &t.Description, &amt, &t.UserID, &t.ServiceID, &t.CreatedOn); err != nil {
			return nil, err
		}
		if t.TotalAmount, err = money.Parse(amt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type ledgerTx struct{ tx pgx.Tx }

func (l *ledgerTx) ServiceByCode(ctx context.Context, code string) (models.Service, error) {
	return scanService(l.tx.QueryRow(ctx,
		`SELECT id, service_code, service_name, service_icon, service_tariff::text
		   FROM services
		  WHERE service_code=$1`, code,
	))
}

func (l *ledgerTx) Balance(ctx context.Context, email string) (money.Money, error) {
	var bal string
	err := l.tx.QueryRow(ctx, `SELECT balance::text FROM users WHERE email=$1`, email).Scan(&bal)
	if errors.Is(err, pgx.ErrNoRows) {
		return money.Money{}, repository.ErrNotFound
	}
	if err != nil {
		return money.Money{}, err
	}
	return money.Parse(bal)
}

func (l *ledgerTx) Credit(ctx context.Context, email string, amount money.Money) (int64, money.Money, error) {
	id, bal, err := l.updateBalance(ctx,
		`UPDATE users
		    SET balance = balance + $2::numeric,
		        updated_at = now()
		  WHERE email = $1
		  RETURNING id, balance::text`,
		email, amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, money.Money{}, repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22003" { // numeric_value_out_of_range
		return 0, money.Money{}, repository.ErrOutOfRange
	}
	return id, bal, err
}

func (l *ledgerTx) Debit(ctx context.Context, email string, amount money.Money) (int64, money.Money, error) {
	id, bal, err := l.updateBalance(ctx,
		`UPDATE users
		    SET balance = balance - $2::numeric,
		        updated_at = now()
		  WHERE email = $1
		    AND balance >= $2::numeric
		  RETURNING id, balance::text`,
		email, amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, money.Money{}, repository.ErrInsufficientFunds
	}
	return id, bal, err
}

func (l *ledgerTx) updateBalance(ctx context.Context, q, email string, amount money.Money) (int64, money.Money, error) {
	var (
		id  int64
		bal string
	)
	if err := l.tx.QueryRow(ctx, q, email, amount.String()).Scan(&id, &bal); err != nil {
		return 0, money.Money{}, err
	}
	m, err := money.Parse(bal)
	return id, m, err
}

func (l *ledgerTx) Append(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	err := l.tx.QueryRow(ctx,
		`INSERT INTO transactions (
		   invoice_number, transaction_type, description, total_amount, user_id, service_id
		 ) VALUES ($1,$2,$3,$4::numeric,$5,$6)
		 RETURNING id, created_on`,
		t.InvoiceNumber, t.Type, t.Description, t.TotalAmount.String(), t.UserID, t.ServiceID,
	).Scan(&t.ID, &t.CreatedOn)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Transaction{}, repository.ErrAlreadyExists
		}
		return models.Transaction{}, err
	}
	return t, nil
}

func scanService(row pgx.Row) (models.Service, error) {
	var (
		s      models.Service
		tariff string
	)
	if err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Icon, &tariff); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Service{}, repository.ErrNotFound
		}
		return models.Service{}, err
	}
	m, err := money.Parse(tariff)
	if err != nil {
		return models.Service{}, fmt.Errorf("service %s tariff: %w", s.Code, err)
	}
	s.Tariff = m
	return s, nil
}
