package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements (ajuste manual).
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Kind      string           `json:"kind" validate:"required,oneof=Entrada Salida"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Note      string           `json:"note,omitempty" validate:"max=500"`
	Date      *time.Time       `json:"date,omitempty"`
}

// EditMovementRequest body para PUT /api/inventory/movements/:id.
type EditMovementRequest struct {
	Quantity int     `json:"quantity" validate:"gt=0"`
	Kind     string  `json:"kind" validate:"required,oneof=Entrada Salida"`
	Note     *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// MovementListRequest filtros del kardex de un producto (fechas 2006-01-02, opcionales).
type MovementListRequest struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	PageRequest
}

// MovementResponse salida de un movimiento del kardex.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Kind      string          `json:"kind"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Date      time.Time       `json:"date"`
	Note      string          `json:"note,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// MovementResultResponse movimiento registrado o corregido junto con el stock resultante.
type MovementResultResponse struct {
	Movement    MovementResponse `json:"movement"`
	StockActual int              `json:"stock_actual"`
}

// ReconciliationItem producto cuyo stock no coincide con la suma del kardex.
type ReconciliationItem struct {
	ProductID   string `json:"product_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	StockActual int    `json:"stock_actual"`
	LedgerStock int    `json:"ledger_stock"`
	Difference  int    `json:"difference"`
}

// ReconciliationResponse resultado de la conciliación stock vs kardex.
type ReconciliationResponse struct {
	CheckedAt     time.Time            `json:"checked_at"`
	Products      int                  `json:"products"`
	Discrepancies []ReconciliationItem `json:"discrepancies"`
}

// ReplenishmentSuggestion sugerencia de reposición de un producto en stock bajo o agotado.
type ReplenishmentSuggestion struct {
	ProductID         string          `json:"product_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	StockActual       int             `json:"stock_actual"`
	MinStock          int             `json:"min_stock"`
	SuggestedQuantity int             `json:"suggested_quantity"` // ceil(mínimo * 1.5) - stock
	UnitCost          decimal.Decimal `json:"unit_cost"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
	UnitsSold90Days   int             `json:"units_sold_90d"`
	Priority          int             `json:"priority"` // 1 = más urgente
}
