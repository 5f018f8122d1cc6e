package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseHeader cabecera de un egreso. TotalAmount = suma de los montos de Details.
type ExpenseHeader struct {
	ID          string
	Date        time.Time
	TotalAmount decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Details     []*ExpenseDetail
}

// ExpenseDetail línea de un egreso; nunca existe sin su cabecera.
type ExpenseDetail struct {
	ID            string
	HeaderID      string
	Concept       string
	Amount        decimal.Decimal
	Recurring     bool
	ReceiptPath   string
	ExpenseTypeID string
}

// DetailsTotal suma los montos de las líneas.
func (h *ExpenseHeader) DetailsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range h.Details {
		total = total.Add(d.Amount)
	}
	return total
}
