package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

const sessionColumns = `id, business_day::text, opening_float, opened_by, opened_at, closed_by, closed_at, expected_cash, counted_cash, difference`

// CashSessionRepo sesiones de caja. business_day es DATE con UNIQUE: una sesión por día.
type CashSessionRepo struct {
	q Querier
}

// NewCashSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

func (r *CashSessionRepo) Create(ctx context.Context, s *entity.CashSession) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cash_sessions (id, business_day, opening_float, opened_by, opened_at)
		VALUES ($1, $2::date, $3, $4, $5)`,
		s.ID, dayParam(s.BusinessDay), s.OpeningFloat, s.OpenedBy, s.OpenedAt)
	if err != nil && isUniqueViolation(err) {
		return domain.Conflict("ya existe una sesión de caja para " + dayParam(s.BusinessDay))
	}
	return mapError("insert cash session", err)
}

func (r *CashSessionRepo) GetByDay(ctx context.Context, day time.Time) (*entity.CashSession, error) {
	return r.get(ctx, `SELECT `+sessionColumns+` FROM cash_sessions WHERE business_day = $1::date`, day)
}

func (r *CashSessionRepo) GetForUpdate(ctx context.Context, day time.Time) (*entity.CashSession, error) {
	return r.get(ctx, `SELECT `+sessionColumns+` FROM cash_sessions WHERE business_day = $1::date FOR UPDATE`, day)
}

func (r *CashSessionRepo) get(ctx context.Context, query string, day time.Time) (*entity.CashSession, error) {
	var s entity.CashSession
	var businessDay string
	var closedBy *string
	err := r.q.QueryRow(ctx, query, dayParam(day)).Scan(
		&s.ID, &businessDay, &s.OpeningFloat, &s.OpenedBy, &s.OpenedAt,
		&closedBy, &s.ClosedAt, &s.ExpectedCash, &s.CountedCash, &s.Difference,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get cash session", err)
	}
	bd, err := time.ParseInLocation("2006-01-02", businessDay, time.Local)
	if err != nil {
		return nil, domain.Persistence("parse business day", err)
	}
	s.BusinessDay = bd
	s.ClosedBy = derefString(closedBy)
	return &s, nil
}

func (r *CashSessionRepo) Close(ctx context.Context, s *entity.CashSession) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE cash_sessions
		SET closed_by = $2, closed_at = $3, expected_cash = $4, counted_cash = $5, difference = $6
		WHERE id = $1`,
		s.ID, nullString(s.ClosedBy), s.ClosedAt, s.ExpectedCash, s.CountedCash, s.Difference)
	if err != nil {
		return mapError("close cash session", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("sesión de caja no encontrada")
	}
	return nil
}

// dayParam envía el día como texto para que la zona horaria del servidor no lo desplace.
func dayParam(t time.Time) string {
	return t.Format("2006-01-02")
}
