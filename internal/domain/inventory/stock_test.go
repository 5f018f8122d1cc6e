package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/inventory"
)

func TestApplyDelta_RechazaStockNegativo(t *testing.T) {
	p := &entity.Product{Code: "AGUA", StockActual: 1}

	err := inventory.ApplyDelta(p, -3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, p.StockActual, "el stock no debe cambiar ni recortarse a cero")
}

func TestApplyDelta_LlegaExactamenteACero(t *testing.T) {
	p := &entity.Product{Code: "AGUA", StockActual: 3}

	require.NoError(t, inventory.ApplyDelta(p, -3))
	assert.Equal(t, 0, p.StockActual)
}

func TestLineQuantityChange(t *testing.T) {
	cases := []struct {
		name           string
		oldQty, newQty int
		kind           string
		units, delta   int
		ok             bool
	}{
		{"aumenta", 2, 5, entity.MovementKindSalida, 3, -3, true},
		{"disminuye", 5, 3, entity.MovementKindEntrada, 2, 2, true},
		{"sin cambio", 4, 4, "", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, units, delta, ok := inventory.LineQuantityChange(tc.oldQty, tc.newQty)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.units, units)
			assert.Equal(t, tc.delta, delta)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestRevertAndReapply(t *testing.T) {
	// stock 10 con una Salida(4) registrada → corregir a Salida(6): 10 + 4 - 6 = 8
	final, err := inventory.RevertAndReapply(10, entity.MovementKindSalida, 4, entity.MovementKindSalida, 6)
	require.NoError(t, err)
	assert.Equal(t, 8, final)

	// Entrada(5) → Salida(5) con stock 7: intermedio 2, final -3 → rechazo
	_, err = inventory.RevertAndReapply(7, entity.MovementKindEntrada, 5, entity.MovementKindSalida, 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// revertir una Entrada(5) con stock 3 deja intermedio negativo
	_, err = inventory.RevertAndReapply(3, entity.MovementKindEntrada, 5, entity.MovementKindEntrada, 10)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestFold(t *testing.T) {
	movs := []*entity.InventoryMovement{
		{Kind: entity.MovementKindEntrada, Quantity: 20},
		{Kind: entity.MovementKindSalida, Quantity: 5},
		{Kind: entity.MovementKindEntrada, Quantity: 2},
	}
	assert.Equal(t, 17, inventory.Fold(movs))
}

func TestStockStatus(t *testing.T) {
	assert.Equal(t, entity.StockStatusOut, (&entity.Product{StockActual: 0, MinStock: 3}).StockStatus())
	assert.Equal(t, entity.StockStatusLow, (&entity.Product{StockActual: 3, MinStock: 3}).StockStatus())
	assert.Equal(t, entity.StockStatusNormal, (&entity.Product{StockActual: 4, MinStock: 3}).StockStatus())
}

func TestCostCalculator(t *testing.T) {
	// 10 u a 2.00 + 10 u a 4.00 → 3.00
	got := inventory.CostCalculator(10, decimal.NewFromInt(2), 10, decimal.NewFromInt(4))
	assert.True(t, got.Equal(decimal.NewFromInt(3)), "got %s", got)

	// sin stock previo toma el costo de la entrada
	got = inventory.CostCalculator(0, decimal.NewFromInt(9), 5, decimal.RequireFromString("1.50"))
	assert.True(t, got.Equal(decimal.RequireFromString("1.5")), "got %s", got)
}
