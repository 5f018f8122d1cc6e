package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashSession sesión de caja de un día hábil (apertura con fondo inicial y arqueo al cierre).
type CashSession struct {
	ID           string
	BusinessDay  time.Time // fecha a las 00:00
	OpeningFloat decimal.Decimal
	OpenedBy     string
	OpenedAt     time.Time
	ClosedBy     string
	ClosedAt     *time.Time
	ExpectedCash *decimal.Decimal
	CountedCash  *decimal.Decimal
	Difference   *decimal.Decimal
}

// IsOpen indica si la sesión sigue abierta.
func (s *CashSession) IsOpen() bool {
	return s.ClosedAt == nil
}
