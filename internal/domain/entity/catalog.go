package entity

import "github.com/shopspring/decimal"

// Service servicio del catálogo (sauna, masaje, ...). Solo lectura para el núcleo.
type Service struct {
	ID     string
	Name   string
	Price  decimal.Decimal
	Active bool
}
