package services

import (
	"context"
	"log/slog"

	"github.com/baharkarakas/ppob-wallet/internal/cache"
	"github.com/baharkarakas/ppob-wallet/internal/metrics"
	"github.com/baharkarakas/ppob-wallet/internal/models"
	repo "github.com/baharkarakas/ppob-wallet/internal/repository"
)

type CatalogService struct {
	catalog repo.Catalog
	cache   cache.ServiceCache
	log     *slog.Logger
}

func NewCatalogService(catalog repo.Catalog, c cache.ServiceCache, log *slog.Logger) *CatalogService {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &CatalogService{catalog: catalog, cache: c, log: log}
}

// Services reads through the cache. Cache failures are logged and the
// repository answers instead.
func (s *CatalogService) Services(ctx context.Context) ([]models.Service, error) {
	cached, hit, err := s.cache.GetServices(ctx)
	switch {
	case err != nil:
		metrics.CatalogCacheRequests.WithLabelValues("error").Inc()
		s.log.Warn("catalog cache read failed", "err", err)
	case hit:
		metrics.CatalogCacheRequests.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		metrics.CatalogCacheRequests.WithLabelValues("miss").Inc()
	}

	services, err := s.catalog.Services(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetServices(ctx, services); err != nil {
		s.log.Warn("catalog cache write failed", "err", err)
	}
	return services, nil
}

func (s *CatalogService) Banners(ctx context.Context) ([]models.Banner, error) {
	return s.catalog.Banners(ctx)
}
