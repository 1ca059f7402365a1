package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/ppob-wallet/internal/models"
	"github.com/baharkarakas/ppob-wallet/internal/money"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInsufficientFunds is returned by a guarded debit that matched no row
	// because the balance was below the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrOutOfRange is returned when a balance change would leave the column's
	// range.
	ErrOutOfRange = errors.New("amount out of range")
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	UpdateName(ctx context.Context, email, firstName, lastName string) (models.User, error)
	UpdateImage(ctx context.Context, email, imageURL string) (models.User, error)
}

type Catalog interface {
	Services(ctx context.Context) ([]models.Service, error)
	Banners(ctx context.Context) ([]models.Banner, error)
}

type Ledger interface {
	// WithTx runs fn in one database transaction on one connection. A non-nil
	// error from fn rolls everything back and is returned as is.
	WithTx(ctx context.Context, fn func(LedgerTx) error) error

	UserID(ctx context.Context, email string) (int64, error)
	History(ctx context.Context, userID int64, limit, offset int) ([]models.Transaction, error)
}

// LedgerTx is the set of statements available inside a settlement.
type LedgerTx interface {
	ServiceByCode(ctx context.Context, code string) (models.Service, error)
	Balance(ctx context.Context, email string) (money.Money, error)

	// Credit adds amount in storage and returns the user id and new balance.
	// ErrOutOfRange means the new balance would not fit.
	Credit(ctx context.Context, email string, amount money.Money) (int64, money.Money, error)
	// Debit subtracts amount only if the balance covers it, in one statement.
	// A zero-row update is reported as ErrInsufficientFunds whether the balance
	// was short or the email matched no user; callers that need to tell these
	// apart must look the user up first.
	Debit(ctx context.Context, email string, amount money.Money) (int64, money.Money, error)

	// Append inserts a ledger row and returns it with CreatedOn filled in.
	Append(ctx context.Context, t models.Transaction) (models.Transaction, error)
}

// Repositories is what a storage backend hands to the service layer.
type Repositories struct {
	Users   Users
	Catalog Catalog
	Ledger  Ledger
}
