package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementKindEntrada = "Entrada" // aumenta stock
	MovementKindSalida  = "Salida"  // disminuye stock
)

// InventoryMovement es una entrada inmutable del kardex. Quantity siempre es positiva;
// el signo lo da Kind.
type InventoryMovement struct {
	ID        string
	ProductID string
	Kind      string
	Quantity  int
	UnitCost  decimal.Decimal
	TotalCost decimal.Decimal
	Date      time.Time
	Note      string
	CreatedBy string
	CreatedAt time.Time
}

// ValidMovementKind indica si kind es Entrada o Salida.
func ValidMovementKind(kind string) bool {
	return kind == MovementKindEntrada || kind == MovementKindSalida
}

// SignedQuantity devuelve la cantidad con signo (+ entrada, - salida).
func (m *InventoryMovement) SignedQuantity() int {
	if m.Kind == MovementKindSalida {
		return -m.Quantity
	}
	return m.Quantity
}
