package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

// AddService agrega una línea de servicio. Sin precio explícito se toma una foto del precio del catálogo.
func (uc *AccountUseCase) AddService(ctx context.Context, accountID string, in dto.ServiceLineRequest) (*dto.AccountResponse, error) {
	if in.ServiceID == "" {
		return nil, domain.Validation("service_id es obligatorio")
	}
	if err := validateLine(in.Quantity, in.UnitPrice); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		acc, err := lockOpen(ctx, r, accountID)
		if err != nil {
			return err
		}
		svc, err := r.Services.GetByID(ctx, in.ServiceID)
		if err != nil {
			return err
		}
		if svc == nil {
			return domain.NotFound("servicio no encontrado")
		}
		price := svc.Price
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		line := &entity.ServiceLineItem{
			ID:        uuid.New().String(),
			AccountID: acc.ID,
			ServiceID: svc.ID,
			Quantity:  in.Quantity,
			UnitPrice: price,
		}
		line.Recalc()
		if err := r.ServiceLines.Create(ctx, line); err != nil {
			return err
		}
		return recompute(ctx, r, acc)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, accountID)
}

// UpdateService cambia cantidad (y opcionalmente precio) de una línea de servicio.
func (uc *AccountUseCase) UpdateService(ctx context.Context, accountID, lineID string, in dto.UpdateServiceLineRequest) (*dto.AccountResponse, error) {
	if err := validateLine(in.Quantity, in.UnitPrice); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		acc, err := lockOpen(ctx, r, accountID)
		if err != nil {
			return err
		}
		line, err := r.ServiceLines.GetByID(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil || line.AccountID != acc.ID {
			return domain.NotFound("línea de servicio no encontrada")
		}
		line.Quantity = in.Quantity
		if in.UnitPrice != nil {
			line.UnitPrice = *in.UnitPrice
		}
		line.Recalc()
		if err := r.ServiceLines.Update(ctx, line); err != nil {
			return err
		}
		return recompute(ctx, r, acc)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, accountID)
}

// RemoveService elimina una línea de servicio. No tiene efecto en inventario.
func (uc *AccountUseCase) RemoveService(ctx context.Context, accountID, lineID string) (*dto.AccountResponse, error) {
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		acc, err := lockOpen(ctx, r, accountID)
		if err != nil {
			return err
		}
		line, err := r.ServiceLines.GetByID(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil || line.AccountID != acc.ID {
			return domain.NotFound("línea de servicio no encontrada")
		}
		if err := r.ServiceLines.Delete(ctx, line.ID); err != nil {
			return err
		}
		return recompute(ctx, r, acc)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, accountID)
}

func validateLine(quantity int, unitPrice *decimal.Decimal) error {
	if quantity <= 0 {
		return domain.Validation("la cantidad debe ser mayor que cero")
	}
	if unitPrice != nil && unitPrice.IsNegative() {
		return domain.Validation("el precio unitario no puede ser negativo")
	}
	if unitPrice != nil {
		return domain.CheckMoney("unit_price", *unitPrice)
	}
	return nil
}
