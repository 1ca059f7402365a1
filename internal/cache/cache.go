// Package cache keeps read-mostly catalog data out of the database.
package cache

import (
	"context"

	"github.com/baharkarakas/ppob-wallet/internal/models"
)

// ServiceCache stores the service catalog. A miss is (nil, false, nil).
type ServiceCache interface {
	GetServices(ctx context.Context) ([]models.Service, bool, error)
	SetServices(ctx context.Context, services []models.Service) error
}

// Noop never hits.
type Noop struct{}

func (Noop) GetServices(context.Context) ([]models.Service, bool, error) { return nil, false, nil }
func (Noop) SetServices(context.Context, []models.Service) error         { return nil }
