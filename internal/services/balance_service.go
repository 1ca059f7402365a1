package services

import (
	"context"
	"errors"

	"github.com/baharkarakas/ppob-wallet/internal/money"
	repo "github.com/baharkarakas/ppob-wallet/internal/repository"
)

type BalanceService struct{ users repo.Users }

func NewBalanceService(users repo.Users) *BalanceService { return &BalanceService{users: users} }

// Current reads the stored balance; the token snapshot is never used.
func (s *BalanceService) Current(ctx context.Context, email string) (money.Money, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return money.Money{}, ErrUserNotFound
	}
	if err != nil {
		return money.Money{}, err
	}
	return u.Balance, nil
}
