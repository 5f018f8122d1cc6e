package repository

import (
	"context"
	"time"

	"github.com/jhoicas/sauna-pos/internal/domain/entity"
)

// CashSessionRepository sesiones de caja, una por día hábil.
type CashSessionRepository interface {
	// Create devuelve domain.ErrConflict si ya existe sesión para el día.
	Create(ctx context.Context, s *entity.CashSession) error
	GetByDay(ctx context.Context, day time.Time) (*entity.CashSession, error)
	GetForUpdate(ctx context.Context, day time.Time) (*entity.CashSession, error)
	Close(ctx context.Context, s *entity.CashSession) error
}
