package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/domain/entity"
)

// PaymentRepository pagos registrados al cerrar cuentas.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	ListByAccount(ctx context.Context, accountID string) ([]*entity.Payment, error)
	// SumByMethod suma pagos en [from, to) agrupados por medio de pago.
	SumByMethod(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error)
}
