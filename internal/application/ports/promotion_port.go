package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PromotionCatalog expone el monto de descuento de una promoción. El núcleo no administra
// promociones, solo consume el monto. Devuelve domain.ErrNotFound si no existe.
type PromotionCatalog interface {
	GetDiscount(ctx context.Context, promotionID string) (decimal.Decimal, error)
}
