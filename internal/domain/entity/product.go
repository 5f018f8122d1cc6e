package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock usados por el filtro de búsqueda.
const (
	StockStatusLow    = "bajo"     // 0 < stock <= mínimo
	StockStatusOut    = "sinstock" // stock == 0
	StockStatusNormal = "normal"   // stock > mínimo
)

// Product representa un producto vendible en las cuentas del spa.
// StockActual solo cambia junto con un movimiento del kardex (InventoryMovement).
type Product struct {
	ID            string
	Code          string // único
	Name          string
	PurchasePrice decimal.Decimal // costo de compra, se usa para valorizar salidas
	SalePrice     decimal.Decimal
	StockActual   int
	MinStock      int
	CategoryID    string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockStatus clasifica el stock actual frente al mínimo.
func (p *Product) StockStatus() string {
	switch {
	case p.StockActual <= 0:
		return StockStatusOut
	case p.StockActual <= p.MinStock:
		return StockStatusLow
	default:
		return StockStatusNormal
	}
}
