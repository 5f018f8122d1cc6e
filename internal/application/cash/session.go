package cash

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

// OpenSession abre la caja del día con un fondo inicial. Solo hay una sesión por día hábil.
func (uc *CashUseCase) OpenSession(ctx context.Context, actorID string, day time.Time, openingFloat decimal.Decimal) (*dto.CashSessionResponse, error) {
	if openingFloat.IsNegative() {
		return nil, domain.Validation("el fondo inicial no puede ser negativo")
	}
	if err := domain.CheckMoney("opening_float", openingFloat); err != nil {
		return nil, err
	}
	s := &entity.CashSession{
		ID:           uuid.New().String(),
		BusinessDay:  startOfDay(day),
		OpeningFloat: openingFloat,
		OpenedBy:     actorID,
		OpenedAt:     time.Now(),
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		existing, err := r.Sessions.GetByDay(ctx, s.BusinessDay)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflict("la caja del " + s.BusinessDay.Format("2006-01-02") + " ya fue abierta")
		}
		return r.Sessions.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("business_day", s.BusinessDay.Format("2006-01-02")).Str("opening_float", openingFloat.String()).Msg("caja abierta")
	return toSessionResponse(s), nil
}

// CloseSession cierra la caja del día: esperado = fondo + ingresos en efectivo - egresos del día;
// diferencia = contado - esperado.
func (uc *CashUseCase) CloseSession(ctx context.Context, actorID string, day time.Time, counted decimal.Decimal) (*dto.CashSessionResponse, error) {
	if counted.IsNegative() {
		return nil, domain.Validation("el efectivo contado no puede ser negativo")
	}
	if err := domain.CheckMoney("counted_cash", counted); err != nil {
		return nil, err
	}
	from := startOfDay(day)
	to := from.AddDate(0, 0, 1)
	var session *entity.CashSession
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		s, err := r.Sessions.GetForUpdate(ctx, from)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("no hay sesión de caja para " + from.Format("2006-01-02"))
		}
		if !s.IsOpen() {
			return domain.Conflict("la caja del " + from.Format("2006-01-02") + " ya fue cerrada")
		}
		byMethod, err := r.Payments.SumByMethod(ctx, from, to)
		if err != nil {
			return err
		}
		expenses, err := r.Expenses.SumByRange(ctx, from, to)
		if err != nil {
			return err
		}
		expected := s.OpeningFloat.Add(byMethod[uc.cashMethodID]).Sub(expenses)
		diff := counted.Sub(expected)
		now := time.Now()
		s.ClosedBy = actorID
		s.ClosedAt = &now
		s.ExpectedCash = &expected
		s.CountedCash = &counted
		s.Difference = &diff
		if err := r.Sessions.Close(ctx, s); err != nil {
			return err
		}
		session = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	ev := uc.log.Info()
	if !session.Difference.IsZero() {
		ev = uc.log.Warn()
	}
	ev.Str("business_day", from.Format("2006-01-02")).
		Str("expected", session.ExpectedCash.String()).
		Str("counted", counted.String()).
		Str("difference", session.Difference.String()).
		Msg("caja cerrada")
	return toSessionResponse(session), nil
}

// GetSession devuelve la sesión de caja del día.
func (uc *CashUseCase) GetSession(ctx context.Context, day time.Time) (*dto.CashSessionResponse, error) {
	s, err := uc.repos.Sessions.GetByDay(ctx, startOfDay(day))
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("no hay sesión de caja para " + day.Format("2006-01-02"))
	}
	return toSessionResponse(s), nil
}

func toSessionResponse(s *entity.CashSession) *dto.CashSessionResponse {
	return &dto.CashSessionResponse{
		ID:           s.ID,
		BusinessDay:  s.BusinessDay.Format("2006-01-02"),
		OpeningFloat: s.OpeningFloat,
		OpenedBy:     s.OpenedBy,
		OpenedAt:     s.OpenedAt,
		ClosedBy:     s.ClosedBy,
		ClosedAt:     s.ClosedAt,
		ExpectedCash: s.ExpectedCash,
		CountedCash:  s.CountedCash,
		Difference:   s.Difference,
		Open:         s.IsOpen(),
	}
}
