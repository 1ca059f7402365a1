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

var _ repository.Users = (*usersRepo)(nil)

type usersRepo struct{ pool *pgxpool.Pool }

const userColumns = `id, email, first_name, last_name, password_hash, balance::text, profile_image, created_at`

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users(email, first_name, last_name, password_hash)
		 VALUES($1,$2,$3,$4)
		 RETURNING `+userColumns,
		u.Email, u.FirstName, u.LastName, u.PasswordHash,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, repository.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=$1`, email,
	))
}

func (r *usersRepo) UpdateName(ctx context.Context, email, firstName, lastName string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET first_name=$2, last_name=$3, updated_at=now()
		  WHERE email=$1
		  RETURNING `+userColumns,
		email, firstName, lastName,
	))
}

func (r *usersRepo) UpdateImage(ctx context.Context, email, imageURL string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET profile_image=$2, updated_at=now()
		  WHERE email=$1
		  RETURNING `+userColumns,
		email, imageURL,
	))
}

func scanUser(row pgx.Row) (models.User, error) {
	var (
		u   models.User
		bal string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &bal, &u.ProfileImage, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, repository.ErrNotFound
		}
		return models.User{}, err
	}
	m, err := money.Parse(bal)
	if err != nil {
		return models.User{}, fmt.Errorf("user %d balance: %w", u.ID, err)
	}
	u.Balance = m
	return u, nil
}
