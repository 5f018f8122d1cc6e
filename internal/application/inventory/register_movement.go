package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/inventory"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
	"github.com/jhoicas/sauna-pos/pkg/logger"
)

// NoteManualAdjustment nota por defecto de un ajuste manual.
const NoteManualAdjustment = "Ajuste manual"

// MovementUseCase ajustes manuales, corrección de movimientos y consultas del kardex.
type MovementUseCase struct {
	tx      ports.TxRunner
	repos   repository.Repos
	alerter *Alerter
	log     *logger.Logger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(tx ports.TxRunner, repos repository.Repos, alerter *Alerter, log *logger.Logger) *MovementUseCase {
	return &MovementUseCase{tx: tx, repos: repos, alerter: alerter, log: logger.OrNop(log)}
}

// RegisterAdjustment registra un ajuste manual en una transacción con la fila del producto bloqueada.
// Una Entrada con costo unitario explícito recalcula el costo de compra (promedio ponderado).
// Una Salida que dejaría stock negativo se rechaza con ErrInsufficientStock.
func (uc *MovementUseCase) RegisterAdjustment(ctx context.Context, actorID string, in dto.RegisterMovementRequest) (*dto.MovementResultResponse, error) {
	if in.ProductID == "" {
		return nil, domain.Validation("product_id es obligatorio")
	}
	if !entity.ValidMovementKind(in.Kind) {
		return nil, domain.Validation("tipo de movimiento inválido: " + in.Kind)
	}
	if in.Quantity <= 0 {
		return nil, domain.Validation("la cantidad debe ser mayor que cero")
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.Validation("el costo unitario no puede ser negativo")
	}
	if in.UnitCost != nil {
		if err := domain.CheckMoney("unit_cost", *in.UnitCost); err != nil {
			return nil, err
		}
	}
	note := strings.TrimSpace(in.Note)
	if note == "" {
		note = NoteManualAdjustment
	}
	var date time.Time
	if in.Date != nil {
		date = *in.Date
	}

	var product *entity.Product
	var mov *entity.InventoryMovement
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("producto no encontrado")
		}
		unitCost := p.PurchasePrice
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
			if in.Kind == entity.MovementKindEntrada {
				newCost := inventory.CostCalculator(p.StockActual, p.PurchasePrice, in.Quantity, unitCost)
				if err := r.Products.UpdatePurchasePrice(ctx, p.ID, newCost); err != nil {
					return err
				}
			}
		}
		product, mov, err = ApplyMovement(ctx, r, MovementInput{
			ProductID: p.ID,
			Kind:      in.Kind,
			Quantity:  in.Quantity,
			UnitCost:  unitCost,
			Note:      note,
			ActorID:   actorID,
			Date:      date,
		})
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", in.ProductID).Msg("ajuste de inventario revertido")
		return nil, err
	}
	uc.log.Info().
		Str("product_id", product.ID).
		Str("kind", mov.Kind).
		Int("delta", mov.SignedQuantity()).
		Int("stock", product.StockActual).
		Msg("ajuste de inventario registrado")
	uc.alerter.Notify(ctx, product)
	return &dto.MovementResultResponse{Movement: toMovementResponse(mov), StockActual: product.StockActual}, nil
}

// EditMovement corrige un movimiento existente: revierte su efecto, aplica el nuevo y persiste
// ambos cambios en una transacción. Si el stock intermedio o final queda negativo no cambia nada.
func (uc *MovementUseCase) EditMovement(ctx context.Context, movementID string, in dto.EditMovementRequest) (*dto.MovementResultResponse, error) {
	if !entity.ValidMovementKind(in.Kind) {
		return nil, domain.Validation("tipo de movimiento inválido: " + in.Kind)
	}
	if in.Quantity <= 0 {
		return nil, domain.Validation("la cantidad debe ser mayor que cero")
	}

	var product *entity.Product
	var mov *entity.InventoryMovement
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		m, err := r.Movements.GetForUpdate(ctx, movementID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NotFound("movimiento no encontrado")
		}
		p, err := r.Products.GetForUpdate(ctx, m.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("producto no encontrado")
		}
		final, err := inventory.RevertAndReapply(p.StockActual, m.Kind, m.Quantity, in.Kind, in.Quantity)
		if err != nil {
			return err
		}
		if err := r.Products.UpdateStock(ctx, p.ID, final); err != nil {
			return err
		}
		p.StockActual = final

		m.Kind = in.Kind
		m.Quantity = in.Quantity
		m.TotalCost = m.UnitCost.Mul(decimal.NewFromInt(int64(in.Quantity)))
		if in.Note != nil {
			m.Note = *in.Note
		}
		if err := r.Movements.Update(ctx, m); err != nil {
			return err
		}
		product, mov = p, m
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("movement_id", movementID).Msg("corrección de movimiento revertida")
		return nil, err
	}
	uc.log.Info().Str("movement_id", mov.ID).Str("product_id", product.ID).Int("stock", product.StockActual).Msg("movimiento corregido")
	uc.alerter.Notify(ctx, product)
	return &dto.MovementResultResponse{Movement: toMovementResponse(mov), StockActual: product.StockActual}, nil
}

// Latest devuelve el último movimiento del producto, o nil si no tiene.
func (uc *MovementUseCase) Latest(ctx context.Context, productID string) (*dto.MovementResponse, error) {
	m, err := uc.repos.Movements.LatestByProduct(ctx, productID)
	if err != nil || m == nil {
		return nil, err
	}
	out := toMovementResponse(m)
	return &out, nil
}

// ListRecent devuelve los últimos n movimientos de todos los productos.
func (uc *MovementUseCase) ListRecent(ctx context.Context, n int) ([]dto.MovementResponse, error) {
	if n <= 0 {
		n = 50
	}
	list, err := uc.repos.Movements.ListRecent(ctx, n)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ListForProduct devuelve el kardex de un producto, del más reciente al más antiguo.
func (uc *MovementUseCase) ListForProduct(ctx context.Context, productID string, in dto.MovementListRequest) ([]dto.MovementResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto no encontrado")
	}
	filter := repository.MovementFilter{ProductID: productID, Limit: in.Limit, Offset: in.Offset}
	if in.From != "" {
		from, err := ParseDay(in.From)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := ParseDay(in.To)
		if err != nil {
			return nil, err
		}
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}
	list, err := uc.repos.Movements.ListByProduct(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ParseDay interpreta una fecha 2006-01-02 en la zona horaria local (inicio del día).
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, domain.Validation("fecha inválida, se espera AAAA-MM-DD: " + s)
	}
	return t, nil
}

func toMovementResponses(list []*entity.InventoryMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      m.Kind,
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		TotalCost: m.TotalCost,
		Date:      m.Date,
		Note:      m.Note,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}
