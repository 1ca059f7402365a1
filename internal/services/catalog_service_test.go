package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/ppob-wallet/internal/models"
	"github.com/baharkarakas/ppob-wallet/internal/repository/memory"
)

type fakeCache struct {
	services []models.Service
	hit      bool
	getErr   error
	sets     int
}

func (f *fakeCache) GetServices(context.Context) ([]models.Service, bool, error) {
	return f.services, f.hit, f.getErr
}

func (f *fakeCache) SetServices(_ context.Context, s []models.Service) error {
	f.sets++
	f.services, f.hit = s, true
	return nil
}

func TestServicesReadThrough(t *testing.T) {
	c := &fakeCache{}
	svc := NewCatalogService(memory.New(), c, nil)
	ctx := context.Background()

	first, err := svc.Services(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 12)
	assert.Equal(t, 1, c.sets)

	second, err := svc.Services(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.sets, "second read is served from cache")
}

func TestServicesCacheErrorFallsBack(t *testing.T) {
	c := &fakeCache{getErr: errors.New("redis down")}
	svc := NewCatalogService(memory.New(), c, nil)

	got, err := svc.Services(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 12)
}

func TestBanners(t *testing.T) {
	svc := NewCatalogService(memory.New(), nil, nil)
	got, err := svc.Banners(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Equal(t, "Banner 1", got[0].Name)
}

func TestBalanceCurrent(t *testing.T) {
	store := memory.New()
	svc := NewBalanceService(store)
	ctx := context.Background()

	_, err := svc.Current(ctx, email)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = store.Create(ctx, models.User{Email: email})
	require.NoError(t, err)
	bal, err := svc.Current(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, "0", bal.String())
}
