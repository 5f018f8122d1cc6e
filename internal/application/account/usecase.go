// Package account implementa la cuenta (comanda) de un cliente y sus líneas de servicio y producto.
// Toda mutación de líneas recalcula los totales dentro de la misma transacción.
package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/inventory"
	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
	"github.com/jhoicas/sauna-pos/pkg/logger"
)

// AccountUseCase casos de uso de la cuenta y sus líneas.
type AccountUseCase struct {
	tx      ports.TxRunner
	repos   repository.Repos
	promos  ports.PromotionCatalog
	alerter *inventory.Alerter
	log     *logger.Logger
}

// NewAccountUseCase construye el caso de uso. promos y alerter pueden ser nil.
func NewAccountUseCase(
	tx ports.TxRunner,
	repos repository.Repos,
	promos ports.PromotionCatalog,
	alerter *inventory.Alerter,
	log *logger.Logger,
) *AccountUseCase {
	return &AccountUseCase{tx: tx, repos: repos, promos: promos, alerter: alerter, log: logger.OrNop(log)}
}

// Create abre una cuenta con totales en cero y el estado de menor ordinal.
// Si trae promoción, el descuento se toma del catálogo de promociones.
func (uc *AccountUseCase) Create(ctx context.Context, actorID string, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		return nil, domain.Validation("client_id es obligatorio")
	}
	discount := decimal.Zero
	var promotionID *string
	if in.PromotionID != nil && *in.PromotionID != "" {
		if uc.promos == nil {
			return nil, domain.NotFound("promoción no encontrada")
		}
		d, err := uc.promos.GetDiscount(ctx, *in.PromotionID)
		if err != nil {
			return nil, err
		}
		if d.IsNegative() {
			return nil, domain.Validation("el descuento de la promoción no puede ser negativo")
		}
		if err := domain.CheckMoney("discount", d); err != nil {
			return nil, err
		}
		discount = d
		id := *in.PromotionID
		promotionID = &id
	}

	acc := &entity.Account{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		CreatedBy:   actorID,
		CreatedAt:   time.Now(),
		Discount:    discount,
		PromotionID: promotionID,
	}
	acc.ApplyTotals(nil, nil)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		status, err := r.Accounts.DefaultStatus(ctx)
		if err != nil {
			return err
		}
		if status == nil {
			return domain.Persistence("default account status", errors.New("no hay estados de cuenta configurados"))
		}
		acc.StatusID = status.ID
		return r.Accounts.Create(ctx, acc)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("account_id", acc.ID).Str("client_id", acc.ClientID).Msg("cuenta abierta")
	return toAccountResponse(acc, nil, nil, nil), nil
}

// Get devuelve la cuenta con sus líneas y pagos.
func (uc *AccountUseCase) Get(ctx context.Context, id string) (*dto.AccountResponse, error) {
	acc, err := uc.repos.Accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.NotFound("cuenta no encontrada")
	}
	services, err := uc.repos.ServiceLines.ListByAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	products, err := uc.repos.ProductLines.ListByAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.repos.Payments.ListByAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(acc, services, products, payments), nil
}

// List lista cuentas (sin líneas).
func (uc *AccountUseCase) List(ctx context.Context, in dto.AccountListRequest) (*dto.AccountListResponse, error) {
	in.DefaultPage()
	list, err := uc.repos.Accounts.List(ctx, repository.AccountFilter{
		OpenOnly: in.OpenOnly,
		ClientID: in.ClientID,
		Limit:    in.FetchLimit(),
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}
	list, page := dto.Paginate(list, in.PageRequest)
	items := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAccountResponse(a, nil, nil, nil))
	}
	return &dto.AccountListResponse{Items: items, Page: page}, nil
}

// RecomputeTotals recalcula subtotales y total desde las líneas actuales.
func (uc *AccountUseCase) RecomputeTotals(ctx context.Context, id string) (*dto.AccountResponse, error) {
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		acc, err := r.Accounts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if acc == nil {
			return domain.NotFound("cuenta no encontrada")
		}
		return recompute(ctx, r, acc)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Close cierra la cuenta y registra los pagos en la misma transacción.
// No toca líneas ni inventario. Cerrar una cuenta ya cerrada es un conflicto.
func (uc *AccountUseCase) Close(ctx context.Context, id, actorID string, in dto.CloseAccountRequest) (*dto.AccountResponse, error) {
	for _, p := range in.Payments {
		if strings.TrimSpace(p.PaymentMethodID) == "" {
			return nil, domain.Validation("payment_method_id es obligatorio")
		}
		if !p.Amount.IsPositive() {
			return nil, domain.Validation("el monto del pago debe ser mayor que cero")
		}
		if err := domain.CheckMoney("amount", p.Amount); err != nil {
			return nil, err
		}
	}
	closedAt := time.Now()
	if in.ClosedAt != nil {
		closedAt = *in.ClosedAt
	}

	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		acc, err := lockOpen(ctx, r, id)
		if err != nil {
			return err
		}
		for _, p := range in.Payments {
			payment := &entity.Payment{
				ID:              uuid.New().String(),
				AccountID:       acc.ID,
				PaymentMethodID: p.PaymentMethodID,
				Amount:          p.Amount,
				PaidAt:          closedAt,
				CreatedBy:       actorID,
			}
			if err := r.Payments.Create(ctx, payment); err != nil {
				return err
			}
		}
		return r.Accounts.Close(ctx, acc.ID, closedAt, entity.AccountStatusClosed)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("account_id", id).Int("payments", len(in.Payments)).Msg("cuenta cerrada")
	return uc.Get(ctx, id)
}

// Cancel elimina la cuenta con todas sus líneas. Cada línea de producto devuelve su cantidad
// al stock con una Entrada en el kardex. Todo ocurre en una sola transacción.
func (uc *AccountUseCase) Cancel(ctx context.Context, id, actorID string) error {
	restored := 0
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		acc, err := lockOpen(ctx, r, id)
		if err != nil {
			return err
		}
		products, err := r.ProductLines.ListByAccount(ctx, acc.ID)
		if err != nil {
			return err
		}
		for _, line := range products {
			if _, err := removeProductLine(ctx, r, line, actorID, "Cancelación de cuenta "+acc.ID); err != nil {
				return err
			}
			restored++
		}
		services, err := r.ServiceLines.ListByAccount(ctx, acc.ID)
		if err != nil {
			return err
		}
		for _, line := range services {
			if err := r.ServiceLines.Delete(ctx, line.ID); err != nil {
				return err
			}
		}
		return r.Accounts.Delete(ctx, acc.ID)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("account_id", id).Msg("cancelación de cuenta revertida")
		return err
	}
	uc.log.Info().Str("account_id", id).Int("product_lines", restored).Msg("cuenta cancelada")
	return nil
}

// lockOpen bloquea la cuenta y verifica que siga abierta.
func lockOpen(ctx context.Context, r repository.Repos, id string) (*entity.Account, error) {
	acc, err := r.Accounts.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.NotFound("cuenta no encontrada")
	}
	if !acc.IsOpen() {
		return nil, domain.Conflict("la cuenta está cerrada")
	}
	return acc, nil
}

// recompute recalcula los totales desde las líneas actuales (no es incremental).
func recompute(ctx context.Context, r repository.Repos, acc *entity.Account) error {
	services, err := r.ServiceLines.ListByAccount(ctx, acc.ID)
	if err != nil {
		return err
	}
	products, err := r.ProductLines.ListByAccount(ctx, acc.ID)
	if err != nil {
		return err
	}
	acc.ApplyTotals(services, products)
	return r.Accounts.UpdateTotals(ctx, acc)
}

func toAccountResponse(
	a *entity.Account,
	services []*entity.ServiceLineItem,
	products []*entity.ProductLineItem,
	payments []*entity.Payment,
) *dto.AccountResponse {
	out := &dto.AccountResponse{
		ID:               a.ID,
		ClientID:         a.ClientID,
		CreatedBy:        a.CreatedBy,
		CreatedAt:        a.CreatedAt,
		ClosedAt:         a.ClosedAt,
		StatusID:         a.StatusID,
		PromotionID:      a.PromotionID,
		SubtotalServices: a.SubtotalServices,
		SubtotalProducts: a.SubtotalProducts,
		Discount:         a.Discount,
		Total:            a.Total,
		Services:         make([]dto.ServiceLineResponse, 0, len(services)),
		Products:         make([]dto.ProductLineResponse, 0, len(products)),
	}
	for _, s := range services {
		out.Services = append(out.Services, dto.ServiceLineResponse{
			ID: s.ID, ServiceID: s.ServiceID, Quantity: s.Quantity, UnitPrice: s.UnitPrice, Subtotal: s.Subtotal,
		})
	}
	for _, p := range products {
		out.Products = append(out.Products, dto.ProductLineResponse{
			ID: p.ID, ProductID: p.ProductID, Quantity: p.Quantity, UnitPrice: p.UnitPrice, Subtotal: p.Subtotal,
		})
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, dto.PaymentResponse{
			ID: p.ID, PaymentMethodID: p.PaymentMethodID, Amount: p.Amount, PaidAt: p.PaidAt,
		})
	}
	return out
}
