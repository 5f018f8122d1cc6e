package repository

import (
	"context"
	"time"

	"github.com/jhoicas/sauna-pos/internal/domain/entity"
)

// MovementFilter filtro del kardex de un producto. From/To son opcionales.
type MovementFilter struct {
	ProductID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// InventoryMovementRepository puerto del kardex. Los listados van del más reciente al más antiguo.
type InventoryMovementRepository interface {
	Create(ctx context.Context, m *entity.InventoryMovement) error
	GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error)
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryMovement, error)
	// Update solo la usa la corrección administrativa de movimientos.
	Update(ctx context.Context, m *entity.InventoryMovement) error
	LatestByProduct(ctx context.Context, productID string) (*entity.InventoryMovement, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.InventoryMovement, error)
	ListByProduct(ctx context.Context, filter MovementFilter) ([]*entity.InventoryMovement, error)
	// SumByProduct devuelve Σ Entrada - Σ Salida por producto.
	SumByProduct(ctx context.Context) (map[string]int, error)
	// SumOutboundSince suma las unidades de Salida por producto desde since.
	SumOutboundSince(ctx context.Context, since time.Time) (map[string]int, error)
}
