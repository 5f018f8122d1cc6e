package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cuenta sembrados por la migración inicial (id = ordinal).
const (
	AccountStatusOpen   = 1 // abierta
	AccountStatusClosed = 2 // cerrada
)

// AccountStatus fila del catálogo de estados de cuenta.
type AccountStatus struct {
	ID      int
	Name    string
	Ordinal int
}

// Account es la cuenta (comanda) abierta de un cliente.
// Invariante: Total = SubtotalServices + SubtotalProducts - Discount.
type Account struct {
	ID               string
	ClientID         string
	CreatedBy        string
	CreatedAt        time.Time
	ClosedAt         *time.Time
	SubtotalServices decimal.Decimal
	SubtotalProducts decimal.Decimal
	Discount         decimal.Decimal
	Total            decimal.Decimal
	StatusID         int
	PromotionID      *string
}

// IsOpen indica si la cuenta no tiene fecha de cierre.
func (a *Account) IsOpen() bool {
	return a.ClosedAt == nil
}

// ApplyTotals recalcula subtotales y total a partir de las líneas actuales.
func (a *Account) ApplyTotals(services []*ServiceLineItem, products []*ProductLineItem) {
	subServices := decimal.Zero
	for _, s := range services {
		subServices = subServices.Add(s.Subtotal)
	}
	subProducts := decimal.Zero
	for _, p := range products {
		subProducts = subProducts.Add(p.Subtotal)
	}
	a.SubtotalServices = subServices
	a.SubtotalProducts = subProducts
	a.Total = subServices.Add(subProducts).Sub(a.Discount)
}
