package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/ppob-wallet/internal/models"
	"github.com/baharkarakas/ppob-wallet/internal/repository"
)

var _ repository.Catalog = (*catalogRepo)(nil)

type catalogRepo struct{ pool *pgxpool.Pool }

func (r *catalogRepo) Services(ctx context.Context) ([]models.Service, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, service_code, service_name, service_icon, service_tariff::text
		   FROM services
		  ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *catalogRepo) Banners(ctx context.Context) ([]models.Banner, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT banner_name, banner_image, description FROM banner ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Banner{}
	for rows.Next() {
		var b models.Banner
		if err := rows.Scan(&b.Name, &b.Image, &b.Description); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
