package pdf

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0", FormatMoney(decimal.Zero))
	assert.Equal(t, "$950", FormatMoney(decimal.NewFromInt(950)))
	assert.Equal(t, "$25.000", FormatMoney(decimal.NewFromInt(25000)))
	assert.Equal(t, "$1.250.000", FormatMoney(decimal.NewFromInt(1250000)))
	assert.Equal(t, "-$12.500", FormatMoney(decimal.NewFromInt(-12500)))
}

func TestRenderDay(t *testing.T) {
	g := NewCashSummaryPDF("Spa Termal")
	b, err := g.RenderDay(&dto.DaySummaryResponse{
		Date:   "2026-05-10",
		Income: decimal.NewFromInt(85000),
		IncomeByMethod: map[string]decimal.Decimal{
			"efectivo": decimal.NewFromInt(60000),
			"tarjeta":  decimal.NewFromInt(25000),
		},
		Expenses: decimal.NewFromInt(20000),
		Balance:  decimal.NewFromInt(65000),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	_, err = g.RenderDay(nil)
	assert.Error(t, err)
}
