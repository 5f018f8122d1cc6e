package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/inventory"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	stock "github.com/jhoicas/sauna-pos/internal/domain/inventory"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

// AddProduct agrega una línea de producto: en una transacción crea la línea, descuenta el stock,
// registra la Salida al costo de compra actual y recalcula los totales.
func (uc *AccountUseCase) AddProduct(ctx context.Context, accountID, actorID string, in dto.ProductLineRequest) (*dto.AccountResponse, error) {
	if in.ProductID == "" {
		return nil, domain.Validation("product_id es obligatorio")
	}
	if err := validateLine(in.Quantity, in.UnitPrice); err != nil {
		return nil, err
	}
	var product *entity.Product
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		acc, err := lockOpen(ctx, r, accountID)
		if err != nil {
			return err
		}
		p, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("producto no encontrado")
		}
		if !p.Active {
			return domain.Validation("el producto " + p.Code + " está inactivo")
		}
		price := p.SalePrice
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		line := &entity.ProductLineItem{
			ID:        uuid.New().String(),
			AccountID: acc.ID,
			ProductID: p.ID,
			Quantity:  in.Quantity,
			UnitPrice: price,
		}
		line.Recalc()
		if err := r.ProductLines.Create(ctx, line); err != nil {
			return err
		}
		product, _, err = inventory.ApplyMovement(ctx, r, inventory.MovementInput{
			ProductID: p.ID,
			Kind:      entity.MovementKindSalida,
			Quantity:  in.Quantity,
			UnitCost:  p.PurchasePrice,
			Note:      "Consumo en cuenta " + acc.ID,
			ActorID:   actorID,
		})
		if err != nil {
			return err
		}
		return recompute(ctx, r, acc)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("account_id", accountID).Str("product_id", in.ProductID).Msg("alta de producto revertida")
		return nil, err
	}
	uc.logStock(accountID, product, -in.Quantity)
	uc.alerter.Notify(ctx, product)
	return uc.Get(ctx, accountID)
}

// UpdateProduct cambia la cantidad de una línea de producto. La diferencia genera una Salida
// (aumento) o una Entrada (disminución); sin diferencia no hay efecto en el kardex.
// Cantidad 0 equivale a eliminar la línea.
func (uc *AccountUseCase) UpdateProduct(ctx context.Context, accountID, lineID, actorID string, in dto.UpdateProductLineRequest) (*dto.AccountResponse, error) {
	if in.Quantity < 0 {
		return nil, domain.Validation("la cantidad no puede ser negativa")
	}
	if in.Quantity == 0 {
		return uc.RemoveProduct(ctx, accountID, lineID, actorID)
	}
	if err := validateLine(in.Quantity, in.UnitPrice); err != nil {
		return nil, err
	}
	return uc.changeQuantity(ctx, accountID, lineID, actorID, func(line *entity.ProductLineItem) (int, error) {
		return in.Quantity, nil
	}, in.UnitPrice, "Ajuste de cantidad en cuenta ")
}

// ReturnProduct devolución parcial: reduce la línea en quantity unidades con una Entrada.
// Devolver toda la cantidad elimina la línea.
func (uc *AccountUseCase) ReturnProduct(ctx context.Context, accountID, lineID, actorID string, quantity int) (*dto.AccountResponse, error) {
	if quantity <= 0 {
		return nil, domain.Validation("la cantidad a devolver debe ser mayor que cero")
	}
	return uc.changeQuantity(ctx, accountID, lineID, actorID, func(line *entity.ProductLineItem) (int, error) {
		if quantity > line.Quantity {
			return 0, domain.Validation(fmt.Sprintf(
				"no se pueden devolver %d unidades de una línea con %d", quantity, line.Quantity))
		}
		return line.Quantity - quantity, nil
	}, nil, "Devolución parcial en cuenta ")
}

// RemoveProduct elimina una línea de producto devolviendo toda su cantidad al stock.
func (uc *AccountUseCase) RemoveProduct(ctx context.Context, accountID, lineID, actorID string) (*dto.AccountResponse, error) {
	var product *entity.Product
	var qty int
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		acc, line, err := lockLine(ctx, r, accountID, lineID)
		if err != nil {
			return err
		}
		qty = line.Quantity
		product, err = removeProductLine(ctx, r, line, actorID, "Devolución: línea eliminada de cuenta "+acc.ID)
		if err != nil {
			return err
		}
		return recompute(ctx, r, acc)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("account_id", accountID).Str("line_id", lineID).Msg("baja de producto revertida")
		return nil, err
	}
	uc.logStock(accountID, product, qty)
	return uc.Get(ctx, accountID)
}

// changeQuantity aplica la regla de conciliación a un cambio de cantidad. newQty calcula la
// cantidad final a partir de la línea bloqueada; 0 elimina la línea.
func (uc *AccountUseCase) changeQuantity(
	ctx context.Context,
	accountID, lineID, actorID string,
	newQty func(line *entity.ProductLineItem) (int, error),
	unitPrice *decimal.Decimal,
	notePrefix string,
) (*dto.AccountResponse, error) {
	var product *entity.Product
	delta := 0
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		acc, line, err := lockLine(ctx, r, accountID, lineID)
		if err != nil {
			return err
		}
		qty, err := newQty(line)
		if err != nil {
			return err
		}
		if qty == 0 {
			delta = line.Quantity
			product, err = removeProductLine(ctx, r, line, actorID, notePrefix+acc.ID)
			if err != nil {
				return err
			}
			return recompute(ctx, r, acc)
		}

		kind, units, d, changed := stock.LineQuantityChange(line.Quantity, qty)
		line.Quantity = qty
		if unitPrice != nil {
			line.UnitPrice = *unitPrice
		}
		line.Recalc()
		if err := r.ProductLines.Update(ctx, line); err != nil {
			return err
		}
		if changed {
			p, err := r.Products.GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.NotFound("producto no encontrado")
			}
			product, _, err = inventory.ApplyMovement(ctx, r, inventory.MovementInput{
				ProductID: p.ID,
				Kind:      kind,
				Quantity:  units,
				UnitCost:  p.PurchasePrice,
				Note:      notePrefix + acc.ID,
				ActorID:   actorID,
			})
			if err != nil {
				return err
			}
			delta = d
		}
		return recompute(ctx, r, acc)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("account_id", accountID).Str("line_id", lineID).Msg("cambio de cantidad revertido")
		return nil, err
	}
	if product != nil {
		uc.logStock(accountID, product, delta)
		uc.alerter.Notify(ctx, product)
	}
	return uc.Get(ctx, accountID)
}

// lockLine bloquea la cuenta abierta y carga la línea de producto que le pertenece.
func lockLine(ctx context.Context, r repository.Repos, accountID, lineID string) (*entity.Account, *entity.ProductLineItem, error) {
	acc, err := lockOpen(ctx, r, accountID)
	if err != nil {
		return nil, nil, err
	}
	line, err := r.ProductLines.GetByID(ctx, lineID)
	if err != nil {
		return nil, nil, err
	}
	if line == nil || line.AccountID != acc.ID {
		return nil, nil, domain.NotFound("línea de producto no encontrada")
	}
	return acc, line, nil
}

// removeProductLine devuelve al stock toda la cantidad de la línea (Entrada) y la elimina.
func removeProductLine(ctx context.Context, r repository.Repos, line *entity.ProductLineItem, actorID, note string) (*entity.Product, error) {
	p, err := r.Products.GetForUpdate(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto no encontrado")
	}
	if err := r.ProductLines.Delete(ctx, line.ID); err != nil {
		return nil, err
	}
	product, _, err := inventory.ApplyMovement(ctx, r, inventory.MovementInput{
		ProductID: p.ID,
		Kind:      entity.MovementKindEntrada,
		Quantity:  line.Quantity,
		UnitCost:  p.PurchasePrice,
		Note:      note,
		ActorID:   actorID,
	})
	return product, err
}

func (uc *AccountUseCase) logStock(accountID string, p *entity.Product, delta int) {
	if p == nil {
		return
	}
	uc.log.Info().
		Str("account_id", accountID).
		Str("product_id", p.ID).
		Int("delta", delta).
		Int("stock", p.StockActual).
		Msg("stock actualizado por línea de cuenta")
}
