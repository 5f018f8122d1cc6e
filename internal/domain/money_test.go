package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sauna-pos/internal/domain"
)

func TestCheckMoney(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"10", true},
		{"10.5", true},
		{"10.25", true},
		{"10.250", true},
		{"-3.10", true},
		{"0.005", false},
		{"10.001", false},
		{"-1.999", false},
	}
	for _, c := range cases {
		err := domain.CheckMoney("monto", decimal.RequireFromString(c.in))
		if c.ok {
			assert.NoError(t, err, c.in)
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidInput, c.in)
		assert.Contains(t, domain.MessageOf(err), "monto", c.in)
	}
}
