package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

var (
	_ repository.ServiceCatalogRepository = (*ServiceCatalogRepo)(nil)
	_ ports.PromotionCatalog              = (*PromotionRepo)(nil)
)

// ServiceCatalogRepo catálogo de servicios (solo lectura).
type ServiceCatalogRepo struct {
	q Querier
}

// NewServiceCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceCatalogRepository(q Querier) *ServiceCatalogRepo {
	return &ServiceCatalogRepo{q: q}
}

func (r *ServiceCatalogRepo) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	var s entity.Service
	err := r.q.QueryRow(ctx, `SELECT id, name, price, active FROM services WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Price, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get service", err)
	}
	return &s, nil
}

// PromotionRepo lee el descuento de las promociones.
type PromotionRepo struct {
	q Querier
}

// NewPromotionRepository construye el adaptador.
func NewPromotionRepository(q Querier) *PromotionRepo {
	return &PromotionRepo{q: q}
}

// GetDiscount devuelve el monto de descuento de la promoción, o ErrNotFound.
func (r *PromotionRepo) GetDiscount(ctx context.Context, promotionID string) (decimal.Decimal, error) {
	var d decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT discount FROM promotions WHERE id = $1 AND active`, promotionID).Scan(&d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.NotFound("promoción no encontrada")
		}
		return decimal.Zero, mapError("get promotion", err)
	}
	return d, nil
}
