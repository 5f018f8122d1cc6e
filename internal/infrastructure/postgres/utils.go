package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/sauna-pos/internal/domain"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx; los repositorios aceptan cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Códigos SQLSTATE usados para clasificar errores.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func pgConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if pgCode(err) == codeUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// mapError clasifica un error de PostgreSQL en un error de dominio.
// Conflictos de concurrencia (serialización, deadlock) salen como ErrConflict; el resto como ErrPersistence.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch pgCode(err) {
	case codeSerializationFailure, codeDeadlockDetected:
		return &domain.Error{Kind: domain.ErrConflict, Message: "conflicto de concurrencia, reintente la operación", Cause: err}
	case codeCheckViolation:
		if strings.Contains(err.Error(), "stock_actual") {
			return &domain.Error{Kind: domain.ErrInsufficientStock, Message: "stock insuficiente", Cause: err}
		}
	}
	return domain.Persistence(op, err)
}

// pageLimit convierte limit <= 0 en NULL (LIMIT NULL = sin límite).
func pageLimit(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
