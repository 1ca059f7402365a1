package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/ppob-wallet/internal/models"
	"github.com/baharkarakas/ppob-wallet/internal/money"
)

func TestCachedServiceKeepsID(t *testing.T) {
	in := cachedService{ID: 7, Service: models.Service{ID: 7, Code: "PLN", Name: "Listrik", Tariff: money.FromInt(10000)}}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out cachedService
	require.NoError(t, json.Unmarshal(b, &out))
	assert.EqualValues(t, 7, out.ID)
	assert.Equal(t, "PLN", out.Code)
	assert.True(t, out.Tariff.Equal(money.FromInt(10000)))
}

func TestNewRedisBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not a url", time.Minute)
	assert.Error(t, err)
}

func TestNoopMisses(t *testing.T) {
	_, hit, err := Noop{}.GetServices(context.Background())
	assert.NoError(t, err)
	assert.False(t, hit)
}
