package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock se registra como Entrada en el kardex.
type CreateProductRequest struct {
	Code          string          `json:"code" validate:"required,min=1,max=50"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	InitialStock  int             `json:"initial_stock" validate:"min=0"`
	MinStock      int             `json:"min_stock" validate:"min=0"`
	CategoryID    string          `json:"category_id"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	MinStock      *int             `json:"min_stock" validate:"omitempty,min=0"`
	CategoryID    *string          `json:"category_id"`
	Active        *bool            `json:"active"`
}

// ProductSearchRequest filtros de GET /api/products.
type ProductSearchRequest struct {
	Text        string `query:"q"`
	CategoryID  string `query:"category_id"`
	StockStatus string `query:"stock_status" validate:"omitempty,oneof=bajo sinstock normal"`
	ActiveOnly  bool   `query:"active_only"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	StockActual   int             `json:"stock_actual"`
	MinStock      int             `json:"min_stock"`
	StockStatus   string          `json:"stock_status"`
	CategoryID    string          `json:"category_id,omitempty"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
