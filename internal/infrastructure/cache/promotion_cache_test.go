package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sauna-pos/internal/domain"
)

type fakeCatalog struct {
	calls     int
	discounts map[string]decimal.Decimal
}

func (f *fakeCatalog) GetDiscount(_ context.Context, id string) (decimal.Decimal, error) {
	f.calls++
	d, ok := f.discounts[id]
	if !ok {
		return decimal.Zero, domain.NotFound("promoción no encontrada")
	}
	return d, nil
}

// Redis inalcanzable: la caché se salta y se lee la fuente.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestGetDiscount_SinRedisLeeLaFuente(t *testing.T) {
	src := &fakeCatalog{discounts: map[string]decimal.Decimal{"promo10": decimal.NewFromInt(10000)}}
	c := NewPromotionCache(unreachableClient(), src, time.Minute, nil)

	d, err := c.GetDiscount(context.Background(), "promo10")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, 1, src.calls)
}

func TestGetDiscount_PromocionInexistente(t *testing.T) {
	c := NewPromotionCache(unreachableClient(), &fakeCatalog{}, time.Minute, nil)

	_, err := c.GetDiscount(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetDiscount_SinRedisVeElCambioEnLaFuente(t *testing.T) {
	src := &fakeCatalog{discounts: map[string]decimal.Decimal{"promo10": decimal.NewFromInt(10)}}
	c := NewPromotionCache(unreachableClient(), src, time.Minute, nil)
	ctx := context.Background()

	_, err := c.GetDiscount(ctx, "promo10")
	require.NoError(t, err)
	src.discounts["promo10"] = decimal.NewFromInt(15)

	d, err := c.GetDiscount(ctx, "promo10")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 2, src.calls)
}
