package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/inventory"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

// MovementInput datos de un movimiento del kardex.
type MovementInput struct {
	ProductID string
	Kind      string
	Quantity  int
	UnitCost  decimal.Decimal
	Note      string
	ActorID   string
	Date      time.Time // cero = ahora
}

// AdjustStock bloquea la fila del producto (SELECT FOR UPDATE) y le aplica delta.
// Debe llamarse con repos atados a una transacción. Nunca deja stock negativo.
func AdjustStock(ctx context.Context, r repository.Repos, productID string, delta int) (*entity.Product, error) {
	p, err := r.Products.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto no encontrado")
	}
	if err := inventory.ApplyDelta(p, delta); err != nil {
		return nil, err
	}
	if err := r.Products.UpdateStock(ctx, p.ID, p.StockActual); err != nil {
		return nil, err
	}
	return p, nil
}

// Record agrega un movimiento al kardex. No toca el stock del producto.
func Record(ctx context.Context, r repository.Repos, in MovementInput) (*entity.InventoryMovement, error) {
	if !entity.ValidMovementKind(in.Kind) {
		return nil, domain.Validation("tipo de movimiento inválido: " + in.Kind)
	}
	if in.Quantity <= 0 {
		return nil, domain.Validation("la cantidad del movimiento debe ser mayor que cero")
	}
	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	m := &entity.InventoryMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Kind:      in.Kind,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		TotalCost: in.UnitCost.Mul(decimal.NewFromInt(int64(in.Quantity))),
		Date:      date,
		Note:      in.Note,
		CreatedBy: in.ActorID,
		CreatedAt: now,
	}
	if err := r.Movements.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ApplyMovement ajusta el stock y registra el movimiento con los mismos repos (misma transacción).
func ApplyMovement(ctx context.Context, r repository.Repos, in MovementInput) (*entity.Product, *entity.InventoryMovement, error) {
	if !entity.ValidMovementKind(in.Kind) {
		return nil, nil, domain.Validation("tipo de movimiento inválido: " + in.Kind)
	}
	if in.Quantity <= 0 {
		return nil, nil, domain.Validation("la cantidad del movimiento debe ser mayor que cero")
	}
	p, err := AdjustStock(ctx, r, in.ProductID, inventory.Delta(in.Kind, in.Quantity))
	if err != nil {
		return nil, nil, err
	}
	m, err := Record(ctx, r, in)
	if err != nil {
		return nil, nil, err
	}
	return p, m, nil
}
