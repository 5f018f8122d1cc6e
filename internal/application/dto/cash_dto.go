package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaySummaryResponse cuadre de caja de un día: ingresos (pagos), egresos y diferencia.
type DaySummaryResponse struct {
	Date           string                     `json:"date"`
	Income         decimal.Decimal            `json:"income"`
	IncomeByMethod map[string]decimal.Decimal `json:"income_by_method"`
	Expenses       decimal.Decimal            `json:"expenses"`
	Balance        decimal.Decimal            `json:"balance"`
}

// MonthSummaryResponse agregado mensual (suma de los días).
type MonthSummaryResponse struct {
	Year     int                  `json:"year"`
	Month    int                  `json:"month"`
	Income   decimal.Decimal      `json:"income"`
	Expenses decimal.Decimal      `json:"expenses"`
	Balance  decimal.Decimal      `json:"balance"`
	Days     []DaySummaryResponse `json:"days"`
}

// OpenSessionRequest apertura de caja de un día hábil (formato 2006-01-02).
type OpenSessionRequest struct {
	BusinessDay  string          `json:"business_day" validate:"required,datetime=2006-01-02"`
	OpeningFloat decimal.Decimal `json:"opening_float"`
}

// CloseSessionRequest arqueo de cierre.
type CloseSessionRequest struct {
	CountedCash decimal.Decimal `json:"counted_cash"`
}

// CashSessionResponse estado de la sesión de caja.
type CashSessionResponse struct {
	ID           string           `json:"id"`
	BusinessDay  string           `json:"business_day"`
	OpeningFloat decimal.Decimal  `json:"opening_float"`
	OpenedBy     string           `json:"opened_by"`
	OpenedAt     time.Time        `json:"opened_at"`
	ClosedBy     string           `json:"closed_by,omitempty"`
	ClosedAt     *time.Time       `json:"closed_at,omitempty"`
	ExpectedCash *decimal.Decimal `json:"expected_cash,omitempty"`
	CountedCash  *decimal.Decimal `json:"counted_cash,omitempty"`
	Difference   *decimal.Decimal `json:"difference,omitempty"`
	Open         bool             `json:"open"`
}
