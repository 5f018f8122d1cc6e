package main

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func latin1(t *testing.T, s string) *bytes.Reader {
	t.Helper()
	b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestParseProducts(t *testing.T) {
	csv := "codigo;nombre;precio_compra;precio_venta;stock;stock_minimo;categoria\n" +
		"TOA-01;Toalla algodón;$ 12.500;18.000,50;10;2;textiles\n" +
		"ACE-01;Aceite de almendras;8000;15000;x;1;\n" +
		"BAT-01;Batola;20000;35000;4;1\n" +
		";Sin código;1;1;1;1\n"

	rows, errs := parseProducts(latin1(t, csv))

	require.Len(t, rows, 2)
	assert.Len(t, errs, 2)

	toalla := rows[0]
	assert.Equal(t, "TOA-01", toalla.Code)
	assert.Equal(t, "Toalla algodón", toalla.Name)
	assert.True(t, toalla.PurchasePrice.Equal(decimal.NewFromInt(12500)))
	assert.True(t, toalla.SalePrice.Equal(decimal.RequireFromString("18000.5")))
	assert.Equal(t, 10, toalla.InitialStock)
	assert.Equal(t, 2, toalla.MinStock)
	assert.Equal(t, "textiles", toalla.CategoryID)

	assert.Equal(t, "BAT-01", rows[1].Code)
	assert.Empty(t, rows[1].CategoryID)
}

func TestParseMoney(t *testing.T) {
	cases := map[string]string{
		"12500":       "12500",
		"$ 1.250.000": "1250000",
		"3,75":        "3.75",
		"":            "0",
	}
	for in, want := range cases {
		got, err := parseMoney(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%q -> %s", in, got)
	}
	_, err := parseMoney("doce")
	assert.Error(t, err)
}
