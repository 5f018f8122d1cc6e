// Package cache guarda en Redis los descuentos de promociones (lectura a través de caché).
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/pkg/logger"
)

var _ ports.PromotionCatalog = (*PromotionCache)(nil)

const keyPrefix = "sauna-pos:promotion:"

// PromotionCache decora un PromotionCatalog con Redis. Si Redis falla se consulta la fuente
// directamente; una caída de la caché nunca bloquea la apertura de cuentas.
type PromotionCache struct {
	client *redis.Client
	source ports.PromotionCatalog
	ttl    time.Duration
	log    *logger.Logger
}

// NewPromotionCache construye la caché sobre client.
func NewPromotionCache(client *redis.Client, source ports.PromotionCatalog, ttl time.Duration, log *logger.Logger) *PromotionCache {
	return &PromotionCache{client: client, source: source, ttl: ttl, log: logger.OrNop(log)}
}

// NewClient crea el cliente Redis.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// GetDiscount devuelve el descuento cacheado o lo lee de la fuente y lo guarda con TTL.
// Las promociones inexistentes no se cachean. La API no modifica promociones: un cambio hecho
// directamente en la base se ve al vencer el TTL.
func (c *PromotionCache) GetDiscount(ctx context.Context, promotionID string) (decimal.Decimal, error) {
	key := keyPrefix + promotionID
	val, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if d, perr := decimal.NewFromString(val); perr == nil {
			return d, nil
		}
		c.log.Warn().Str("key", key).Msg("valor de promoción corrupto en caché")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("redis no disponible, leyendo promoción de la base")
	}

	d, err := c.source.GetDiscount(ctx, promotionID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := c.client.Set(ctx, key, d.String(), c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear la promoción")
	}
	return d, nil
}
