package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sauna-pos/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"serialización", &pgconn.PgError{Code: codeSerializationFailure}, domain.ErrConflict},
		{"deadlock", fmt.Errorf("tx: %w", &pgconn.PgError{Code: codeDeadlockDetected}), domain.ErrConflict},
		{"check de stock", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: "products_stock_actual_check",
			Message: `new row for relation "products" violates check constraint "products_stock_actual_check"`}, domain.ErrInsufficientStock},
		{"fk", &pgconn.PgError{Code: codeForeignKeyViolation}, domain.ErrPersistence},
		{"otro", errors.New("conexión cerrada"), domain.ErrPersistence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError("op", tt.err)
			assert.Equal(t, tt.kind, domain.KindOf(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
	assert.NoError(t, mapError("op", nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: codeUniqueViolation}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: codeCheckViolation}))
}
