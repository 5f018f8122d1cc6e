package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseDetailRequest línea de un egreso.
type ExpenseDetailRequest struct {
	Concept       string          `json:"concept" validate:"required,max=300"`
	Amount        decimal.Decimal `json:"amount"`
	Recurring     bool            `json:"recurring"`
	ReceiptPath   string          `json:"receipt_path,omitempty"`
	ExpenseTypeID string          `json:"expense_type_id" validate:"required"`
}

// ExpenseRequest body para crear o actualizar un egreso. TotalAmount debe coincidir con la suma de Details.
type ExpenseRequest struct {
	Date        time.Time              `json:"date" validate:"required"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	Details     []ExpenseDetailRequest `json:"details" validate:"required,min=1,dive"`
}

// ExpenseListRequest rango de fechas de GET /api/expenses (formato 2006-01-02).
type ExpenseListRequest struct {
	From string `query:"from" validate:"required,datetime=2006-01-02"`
	To   string `query:"to" validate:"required,datetime=2006-01-02"`
}

// ExpenseDetailResponse salida de una línea de egreso.
type ExpenseDetailResponse struct {
	ID            string          `json:"id"`
	Concept       string          `json:"concept"`
	Amount        decimal.Decimal `json:"amount"`
	Recurring     bool            `json:"recurring"`
	ReceiptPath   string          `json:"receipt_path,omitempty"`
	ExpenseTypeID string          `json:"expense_type_id"`
}

// ExpenseResponse egreso con su detalle.
type ExpenseResponse struct {
	ID          string                  `json:"id"`
	Date        time.Time               `json:"date"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
	CreatedBy   string                  `json:"created_by"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	Details     []ExpenseDetailResponse `json:"details"`
}

// ExpenseListResponse listado de egresos.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Total decimal.Decimal   `json:"total"`
}
