package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/domain/entity"
)

// ProductFilter criterios de búsqueda de productos.
// StockStatus acepta entity.StockStatusLow, entity.StockStatusOut, entity.StockStatusNormal o vacío.
type ProductFilter struct {
	Text        string
	CategoryID  string
	StockStatus string
	ActiveOnly  bool
	Limit       int
	Offset      int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update no modifica stock ni costo de compra.
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, stock int) error
	UpdatePurchasePrice(ctx context.Context, id string, price decimal.Decimal) error
	Search(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
}
