package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment pago registrado al cerrar una cuenta.
type Payment struct {
	ID              string
	AccountID       string
	PaymentMethodID string
	Amount          decimal.Decimal
	PaidAt          time.Time
	CreatedBy       string
}
