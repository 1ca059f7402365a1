// Package memory is a process-local storage backend. It keeps the same
// contracts as the postgres backend and is used by tests and by
// STORE_DRIVER=memory for running without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/baharkarakas/ppob-wallet/internal/models"
	"github.com/baharkarakas/ppob-wallet/internal/money"
	repo "github.com/baharkarakas/ppob-wallet/internal/repository"
)

var (
	_ repo.Users    = (*Store)(nil)
	_ repo.Catalog  = (*Store)(nil)
	_ repo.Ledger   = (*Store)(nil)
	_ repo.LedgerTx = (*ledgerTx)(nil)
)

// Store holds every table behind one mutex. A unit of work holds the mutex for
// its whole duration, so settlements are serialized.
type Store struct {
	mu sync.Mutex

	users    map[string]*models.User // by email
	nextUser int64

	services []models.Service
	banners  []models.Banner

	txns     []models.Transaction
	invoices map[string]struct{}
	nextTxn  int64

	now func() time.Time
}

// New returns an empty store seeded with the default catalog.
func New() *Store {
	return &Store{
		users:    map[string]*models.User{},
		services: DefaultServices(),
		banners:  DefaultBanners(),
		invoices: map[string]struct{}{},
		now:      time.Now,
	}
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() repo.Repositories {
	return repo.Repositories{Users: s, Catalog: s, Ledger: s}
}

// SetCatalog replaces the seeded services. Tests only.
func (s *Store) SetCatalog(services []models.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = append([]models.Service(nil), services...)
}

// ---- Users ----

func (s *Store) Create(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, ok := s.users[key]; ok {
		return models.User{}, repo.ErrAlreadyExists
	}
	s.nextUser++
	u.ID = s.nextUser
	u.Balance = money.Zero
	u.CreatedAt = s.now()
	s.users[key] = &u
	return u, nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return *u, nil
}

func (s *Store) UpdateName(_ context.Context, email, firstName, lastName string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	u.FirstName, u.LastName = firstName, lastName
	return *u, nil
}

func (s *Store) UpdateImage(_ context.Context, email, imageURL string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	u.ProfileImage = &imageURL
	return *u, nil
}

// ---- Catalog ----

func (s *Store) Services(context.Context) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Service{}, s.services...), nil
}

func (s *Store) Banners(context.Context) ([]models.Banner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Banner{}, s.banners...), nil
}

// ---- Ledger ----

// WithTx snapshots the mutable tables, runs fn, and restores the snapshot if fn
// fails.
func (s *Store) WithTx(ctx context.Context, fn func(repo.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(&ledgerTx{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) UserID(_ context.Context, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return 0, repo.ErrNotFound
	}
	return u.ID, nil
}

func (s *Store) History(_ context.Context, userID int64, limit, offset int) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mine := []models.Transaction{}
	for _, t := range s.txns {
		if t.UserID == userID {
			mine = append(mine, t)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		if !mine[i].CreatedOn.Equal(mine[j].CreatedOn) {
			return mine[i].CreatedOn.After(mine[j].CreatedOn)
		}
		return mine[i].ID > mine[j].ID
	})
	if offset >= len(mine) {
		return []models.Transaction{}, nil
	}
	end := len(mine)
	if limit < end-offset {
		end = offset + limit
	}
	return mine[offset:end], nil
}

type snapshot struct {
	users    map[string]models.User
	nextUser int64
	txns     int
	nextTxn  int64
}

func (s *Store) snapshot() snapshot {
	users := make(map[string]models.User, len(s.users))
	for k, u := range s.users {
		users[k] = *u
	}
	return snapshot{users: users, nextUser: s.nextUser, txns: len(s.txns), nextTxn: s.nextTxn}
}

// restore relies on the ledger being append-only: rows past the snapshot
// length are the ones this unit of work added.
func (s *Store) restore(snap snapshot) {
	for _, t := range s.txns[snap.txns:] {
		delete(s.invoices, t.InvoiceNumber)
	}
	s.txns = s.txns[:snap.txns]
	s.nextTxn = snap.nextTxn
	s.users = make(map[string]*models.User, len(snap.users))
	for k, u := range snap.users {
		u := u
		s.users[k] = &u
	}
	s.nextUser = snap.nextUser
}

// ledgerTx runs with Store.mu already held.
type ledgerTx struct{ s *Store }

func (l *ledgerTx) ServiceByCode(_ context.Context, code string) (models.Service, error) {
	for _, svc := range l.s.services {
		if svc.Code == code {
			return svc, nil
		}
	}
	return models.Service{}, repo.ErrNotFound
}

func (l *ledgerTx) Balance(_ context.Context, email string) (money.Money, error) {
	u, ok := l.s.users[strings.ToLower(email)]
	if !ok {
		return money.Money{}, repo.ErrNotFound
	}
	return u.Balance, nil
}

func (l *ledgerTx) Credit(_ context.Context, email string, amount money.Money) (int64, money.Money, error) {
	u, ok := l.s.users[strings.ToLower(email)]
	if !ok {
		return 0, money.Money{}, repo.ErrNotFound
	}
	next := u.Balance.Add(amount)
	if !next.Storable() {
		return 0, money.Money{}, repo.ErrOutOfRange
	}
	u.Balance = next
	return u.ID, u.Balance, nil
}

func (l *ledgerTx) Debit(_ context.Context, email string, amount money.Money) (int64, money.Money, error) {
	u, ok := l.s.users[strings.ToLower(email)]
	if !ok || u.Balance.LessThan(amount) {
		return 0, money.Money{}, repo.ErrInsufficientFunds
	}
	u.Balance = u.Balance.Sub(amount)
	return u.ID, u.Balance, nil
}

func (l *ledgerTx) Append(_ context.Context, t models.Transaction) (models.Transaction, error) {
	if _, dup := l.s.invoices[t.InvoiceNumber]; dup {
		return models.Transaction{}, repo.ErrAlreadyExists
	}
	l.s.nextTxn++
	t.ID = l.s.nextTxn
	t.CreatedOn = l.s.now().UTC()
	l.s.txns = append(l.s.txns, t)
	l.s.invoices[t.InvoiceNumber] = struct{}{}
	return t, nil
}
