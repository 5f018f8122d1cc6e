package repository

import (
	"context"
	"time"

	"github.com/jhoicas/sauna-pos/internal/domain/entity"
)

// AccountFilter filtro del listado de cuentas.
type AccountFilter struct {
	OpenOnly bool
	ClientID string
	Limit    int
	Offset   int
}

// AccountRepository puerto de persistencia de cuentas.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Account, error)
	UpdateTotals(ctx context.Context, a *entity.Account) error
	Close(ctx context.Context, id string, closedAt time.Time, statusID int) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AccountFilter) ([]*entity.Account, error)
	// DefaultStatus devuelve el estado de menor ordinal.
	DefaultStatus(ctx context.Context) (*entity.AccountStatus, error)
}
