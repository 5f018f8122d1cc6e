// Package expense escribe egresos como un agregado: cabecera y detalle se crean,
// actualizan y eliminan juntos en una transacción.
package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
	"github.com/jhoicas/sauna-pos/pkg/logger"
)

// ExpenseUseCase casos de uso de egresos.
type ExpenseUseCase struct {
	tx    ports.TxRunner
	repos repository.Repos
	log   *logger.Logger
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(tx ports.TxRunner, repos repository.Repos, log *logger.Logger) *ExpenseUseCase {
	return &ExpenseUseCase{tx: tx, repos: repos, log: logger.OrNop(log)}
}

// CreateComplete inserta la cabecera y todas sus líneas en una transacción.
// La suma de las líneas debe ser > 0 e igual a TotalAmount.
func (uc *ExpenseUseCase) CreateComplete(ctx context.Context, actorID string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	header := &entity.ExpenseHeader{
		ID:          uuid.New().String(),
		Date:        in.Date,
		TotalAmount: in.TotalAmount,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Expenses.CreateHeader(ctx, header); err != nil {
			return err
		}
		details, err := insertDetails(ctx, r, header.ID, in.Details)
		if err != nil {
			return err
		}
		header.Details = details
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Msg("alta de egreso revertida")
		return nil, err
	}
	uc.log.Info().Str("expense_id", header.ID).Str("total", header.TotalAmount.String()).Int("details", len(header.Details)).Msg("egreso registrado")
	return toExpenseResponse(header), nil
}

// Update reemplaza los datos de un egreso conservando su identidad: actualiza la cabecera
// y reemplaza el detalle en una sola transacción.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	var header *entity.ExpenseHeader
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		h, err := r.Expenses.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if h == nil {
			return domain.NotFound("egreso no encontrado")
		}
		h.Date = in.Date
		h.TotalAmount = in.TotalAmount
		h.UpdatedAt = time.Now()
		if err := r.Expenses.UpdateHeader(ctx, h); err != nil {
			return err
		}
		if err := r.Expenses.DeleteDetails(ctx, h.ID); err != nil {
			return err
		}
		details, err := insertDetails(ctx, r, h.ID, in.Details)
		if err != nil {
			return err
		}
		h.Details = details
		header = h
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("expense_id", id).Msg("actualización de egreso revertida")
		return nil, err
	}
	uc.log.Info().Str("expense_id", header.ID).Str("total", header.TotalAmount.String()).Msg("egreso actualizado")
	return toExpenseResponse(header), nil
}

// DeleteComplete elimina el detalle y luego la cabecera en una transacción.
// Devuelve false si el egreso no existe.
func (uc *ExpenseUseCase) DeleteComplete(ctx context.Context, id string) (bool, error) {
	found := false
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		h, err := r.Expenses.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if h == nil {
			return nil
		}
		found = true
		if err := r.Expenses.DeleteDetails(ctx, h.ID); err != nil {
			return err
		}
		return r.Expenses.DeleteHeader(ctx, h.ID)
	})
	if err != nil {
		return false, err
	}
	if found {
		uc.log.Info().Str("expense_id", id).Msg("egreso eliminado")
	}
	return found, nil
}

// Get devuelve el egreso con su detalle.
func (uc *ExpenseUseCase) Get(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	h, err := uc.repos.Expenses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.NotFound("egreso no encontrado")
	}
	return toExpenseResponse(h), nil
}

// ListByDateRange lista los egresos entre from y to (días completos, ambos incluidos).
func (uc *ExpenseUseCase) ListByDateRange(ctx context.Context, from, to time.Time) (*dto.ExpenseListResponse, error) {
	if to.Before(from) {
		return nil, domain.Validation("el rango de fechas es inválido")
	}
	list, err := uc.repos.Expenses.ListByDateRange(ctx, startOfDay(from), startOfDay(to).AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	out := &dto.ExpenseListResponse{Items: make([]dto.ExpenseResponse, 0, len(list)), Total: decimal.Zero}
	for _, h := range list {
		out.Items = append(out.Items, *toExpenseResponse(h))
		out.Total = out.Total.Add(h.TotalAmount)
	}
	return out, nil
}

// validate rechaza la entrada antes de cualquier escritura.
func validate(in dto.ExpenseRequest) error {
	if in.Date.IsZero() {
		return domain.Validation("la fecha del egreso es obligatoria")
	}
	if len(in.Details) == 0 {
		return domain.Validation("el egreso debe tener al menos una línea")
	}
	sum := decimal.Zero
	for i, d := range in.Details {
		if strings.TrimSpace(d.Concept) == "" {
			return domain.Validation(fmt.Sprintf("línea %d: el concepto es obligatorio", i+1))
		}
		if strings.TrimSpace(d.ExpenseTypeID) == "" {
			return domain.Validation(fmt.Sprintf("línea %d: el tipo de egreso es obligatorio", i+1))
		}
		if !d.Amount.IsPositive() {
			return domain.Validation(fmt.Sprintf("línea %d: el monto debe ser mayor que cero", i+1))
		}
		if err := domain.CheckMoney(fmt.Sprintf("línea %d: el monto", i+1), d.Amount); err != nil {
			return err
		}
		sum = sum.Add(d.Amount)
	}
	if !sum.IsPositive() {
		return domain.Validation("el total del egreso debe ser mayor que cero")
	}
	if err := domain.CheckMoney("total_amount", in.TotalAmount); err != nil {
		return err
	}
	if !sum.Equal(in.TotalAmount) {
		return domain.Validation(fmt.Sprintf(
			"el total %s no coincide con la suma de las líneas %s", in.TotalAmount.String(), sum.String()))
	}
	return nil
}

func insertDetails(ctx context.Context, r repository.Repos, headerID string, in []dto.ExpenseDetailRequest) ([]*entity.ExpenseDetail, error) {
	details := make([]*entity.ExpenseDetail, 0, len(in))
	for _, d := range in {
		detail := &entity.ExpenseDetail{
			ID:            uuid.New().String(),
			HeaderID:      headerID,
			Concept:       strings.TrimSpace(d.Concept),
			Amount:        d.Amount,
			Recurring:     d.Recurring,
			ReceiptPath:   d.ReceiptPath,
			ExpenseTypeID: d.ExpenseTypeID,
		}
		if err := r.Expenses.CreateDetail(ctx, detail); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func toExpenseResponse(h *entity.ExpenseHeader) *dto.ExpenseResponse {
	out := &dto.ExpenseResponse{
		ID:          h.ID,
		Date:        h.Date,
		TotalAmount: h.TotalAmount,
		CreatedBy:   h.CreatedBy,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
		Details:     make([]dto.ExpenseDetailResponse, 0, len(h.Details)),
	}
	for _, d := range h.Details {
		out.Details = append(out.Details, dto.ExpenseDetailResponse{
			ID:            d.ID,
			Concept:       d.Concept,
			Amount:        d.Amount,
			Recurring:     d.Recurring,
			ReceiptPath:   d.ReceiptPath,
			ExpenseTypeID: d.ExpenseTypeID,
		})
	}
	return out
}
