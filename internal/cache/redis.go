package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baharkarakas/ppob-wallet/internal/models"
)

const servicesKey = "catalog:services"

var _ ServiceCache = (*Redis)(nil)

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis parses a redis:// URL and pings the server.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client, ttl: ttl}, nil
}

// cachedService keeps the id, which the API form hides.
type cachedService struct {
	ID int64 `json:"id"`
	models.Service
}

func (r *Redis) GetServices(ctx context.Context) ([]models.Service, bool, error) {
	val, err := r.client.Get(ctx, servicesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var cached []cachedService
	if err := json.Unmarshal(val, &cached); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", servicesKey, err)
	}
	out := make([]models.Service, 0, len(cached))
	for _, c := range cached {
		s := c.Service
		s.ID = c.ID
		out = append(out, s)
	}
	return out, true, nil
}

func (r *Redis) SetServices(ctx context.Context, services []models.Service) error {
	cached := make([]cachedService, 0, len(services))
	for _, s := range services {
		cached = append(cached, cachedService{ID: s.ID, Service: s})
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, servicesKey, data, r.ttl).Err()
}

func (r *Redis) Close() error { return r.client.Close() }
