package entity

import "github.com/shopspring/decimal"

// ServiceLineItem línea de servicio consumido en una cuenta. UnitPrice es una foto
// del precio al momento de agregarla.
type ServiceLineItem struct {
	ID        string
	AccountID string
	ServiceID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Recalc actualiza el subtotal.
func (l *ServiceLineItem) Recalc() {
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ProductLineItem línea de producto consumido en una cuenta.
// Cada alta, cambio de cantidad o baja genera un movimiento de kardex.
type ProductLineItem struct {
	ID        string
	AccountID string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Recalc actualiza el subtotal.
func (l *ProductLineItem) Recalc() {
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
