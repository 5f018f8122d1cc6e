// Package inventory contiene las reglas puras de stock y kardex (sin I/O).
package inventory

import (
	"fmt"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
)

// Delta devuelve el cambio de stock que produce un movimiento de tipo kind por quantity unidades.
func Delta(kind string, quantity int) int {
	if kind == entity.MovementKindSalida {
		return -quantity
	}
	return quantity
}

// ApplyDelta aplica delta al stock del producto. Si el resultado es negativo devuelve
// ErrInsufficientStock y deja el producto intacto. Nunca recorta a cero.
func ApplyDelta(p *entity.Product, delta int) error {
	next := p.StockActual + delta
	if next < 0 {
		return domain.InsufficientStock(fmt.Sprintf(
			"stock insuficiente para %s: disponible %d, requerido %d", p.Code, p.StockActual, -delta))
	}
	p.StockActual = next
	return nil
}

// RevertAndReapply calcula el stock tras revertir un movimiento (oldKind, oldQty) y aplicar
// el nuevo (newKind, newQty). Falla si el stock intermedio o el final quedan negativos.
func RevertAndReapply(stock int, oldKind string, oldQty int, newKind string, newQty int) (int, error) {
	intermediate := stock - Delta(oldKind, oldQty)
	if intermediate < 0 {
		return stock, domain.InsufficientStock(fmt.Sprintf(
			"revertir el movimiento deja stock negativo (%d)", intermediate))
	}
	final := intermediate + Delta(newKind, newQty)
	if final < 0 {
		return stock, domain.InsufficientStock(fmt.Sprintf(
			"el movimiento corregido deja stock negativo (%d)", final))
	}
	return final, nil
}

// LineQuantityChange describe el efecto en kardex de cambiar una línea de producto de
// oldQty a newQty: tipo de movimiento, unidades y delta de stock. ok es false si no hay efecto.
func LineQuantityChange(oldQty, newQty int) (kind string, units int, delta int, ok bool) {
	diff := newQty - oldQty
	switch {
	case diff > 0:
		return entity.MovementKindSalida, diff, -diff, true
	case diff < 0:
		return entity.MovementKindEntrada, -diff, -diff, true
	default:
		return "", 0, 0, false
	}
}

// Fold suma los movimientos con signo: stock esperado partiendo de cero.
func Fold(movements []*entity.InventoryMovement) int {
	total := 0
	for _, m := range movements {
		total += m.SignedQuantity()
	}
	return total
}
