package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale es la cantidad de decimales de todas las columnas monetarias.
const MoneyScale = 2

// CheckMoney rechaza montos con más decimales de los que la base puede guardar sin redondear.
// "1.50" y "1.500" pasan; "1.505" no.
func CheckMoney(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(MoneyScale)) {
		return Validation(fmt.Sprintf("%s admite como máximo %d decimales", field, MoneyScale))
	}
	return nil
}
