package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de productos en stock bajo o agotados,
// priorizando por unidades vendidas en los últimos 90 días.
type ReplenishmentUseCase struct {
	repos repository.Repos
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(repos repository.Repos) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{repos: repos}
}

// Generate devuelve productos activos con stock <= mínimo, la cantidad sugerida para llegar a
// 1.5 veces el mínimo (al menos 1) y su costo estimado al precio de compra actual.
func (uc *ReplenishmentUseCase) Generate(ctx context.Context) ([]dto.ReplenishmentSuggestion, error) {
	products, err := uc.repos.Products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sold, err := uc.repos.Movements.SumOutboundSince(ctx, time.Now().AddDate(0, 0, -90))
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReplenishmentSuggestion, 0)
	for _, p := range products {
		if !p.Active || p.StockStatus() == entity.StockStatusNormal {
			continue
		}
		ideal := int(decimal.NewFromInt(int64(p.MinStock)).Mul(decimal.NewFromFloat(1.5)).Ceil().IntPart())
		qty := ideal - p.StockActual
		if qty < 1 {
			qty = 1
		}
		out = append(out, dto.ReplenishmentSuggestion{
			ProductID:         p.ID,
			Code:              p.Code,
			Name:              p.Name,
			StockActual:       p.StockActual,
			MinStock:          p.MinStock,
			SuggestedQuantity: qty,
			UnitCost:          p.PurchasePrice,
			EstimatedCost:     p.PurchasePrice.Mul(decimal.NewFromInt(int64(qty))),
			UnitsSold90Days:   sold[p.ID],
		})
	}

	// Agotados primero; luego más vendidos.
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := out[i].StockActual <= 0, out[j].StockActual <= 0
		if oi != oj {
			return oi
		}
		return out[i].UnitsSold90Days > out[j].UnitsSold90Days
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
