package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/domain/entity"
)

// ExpenseRepository puerto de egresos (cabecera + detalle).
// GetByID y GetForUpdate cargan también los detalles.
type ExpenseRepository interface {
	CreateHeader(ctx context.Context, h *entity.ExpenseHeader) error
	CreateDetail(ctx context.Context, d *entity.ExpenseDetail) error
	GetByID(ctx context.Context, id string) (*entity.ExpenseHeader, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ExpenseHeader, error)
	UpdateHeader(ctx context.Context, h *entity.ExpenseHeader) error
	DeleteDetails(ctx context.Context, headerID string) error
	DeleteHeader(ctx context.Context, id string) error
	// ListByDateRange devuelve las cabeceras con fecha en [from, to), ordenadas por fecha.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.ExpenseHeader, error)
	// SumByRange suma los totales de las cabeceras con fecha en [from, to).
	SumByRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
