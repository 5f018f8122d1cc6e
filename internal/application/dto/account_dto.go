package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest body para POST /api/accounts.
type CreateAccountRequest struct {
	ClientID    string  `json:"client_id" validate:"required"`
	PromotionID *string `json:"promotion_id,omitempty"`
}

// ServiceLineRequest alta de una línea de servicio. Sin UnitPrice se toma el precio del catálogo.
type ServiceLineRequest struct {
	ServiceID string           `json:"service_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// UpdateServiceLineRequest cambio de cantidad o precio de una línea de servicio.
type UpdateServiceLineRequest struct {
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// ProductLineRequest alta de una línea de producto. Sin UnitPrice se toma el precio de venta.
type ProductLineRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// UpdateProductLineRequest cambio de cantidad de una línea de producto. Quantity 0 elimina la línea.
type UpdateProductLineRequest struct {
	Quantity  int              `json:"quantity" validate:"min=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// ReturnProductRequest devolución parcial de una línea de producto.
type ReturnProductRequest struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

// PaymentRequest pago registrado al cerrar la cuenta.
type PaymentRequest struct {
	PaymentMethodID string          `json:"payment_method_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
}

// CloseAccountRequest body para POST /api/accounts/:id/close.
type CloseAccountRequest struct {
	ClosedAt *time.Time       `json:"closed_at,omitempty"`
	Payments []PaymentRequest `json:"payments,omitempty" validate:"dive"`
}

// ServiceLineResponse salida de una línea de servicio.
type ServiceLineResponse struct {
	ID        string          `json:"id"`
	ServiceID string          `json:"service_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ProductLineResponse salida de una línea de producto.
type ProductLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID              string          `json:"id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAt          time.Time       `json:"paid_at"`
}

// AccountResponse cuenta con sus líneas y totales.
type AccountResponse struct {
	ID               string                `json:"id"`
	ClientID         string                `json:"client_id"`
	CreatedBy        string                `json:"created_by"`
	CreatedAt        time.Time             `json:"created_at"`
	ClosedAt         *time.Time            `json:"closed_at,omitempty"`
	StatusID         int                   `json:"status_id"`
	PromotionID      *string               `json:"promotion_id,omitempty"`
	SubtotalServices decimal.Decimal       `json:"subtotal_services"`
	SubtotalProducts decimal.Decimal       `json:"subtotal_products"`
	Discount         decimal.Decimal       `json:"discount"`
	Total            decimal.Decimal       `json:"total"`
	Services         []ServiceLineResponse `json:"services"`
	Products         []ProductLineResponse `json:"products"`
	Payments         []PaymentResponse     `json:"payments,omitempty"`
}

// AccountListRequest filtros de GET /api/accounts.
type AccountListRequest struct {
	OpenOnly bool   `query:"open_only"`
	ClientID string `query:"client_id"`
	PageRequest
}

// AccountListResponse listado de cuentas (sin líneas).
type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
