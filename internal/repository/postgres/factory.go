package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/baharkarakas/ppob-wallet/internal/repository"
)

func NewRepositories(pool *pgxpool.Pool) repo.Repositories {
	return repo.Repositories{
		Users:   &usersRepo{pool},
		Catalog: &catalogRepo{pool},
		Ledger:  &transactionsRepo{pool},
	}
}
