package entity

import "github.com/shopspring/decimal"

// ItemGroup grupo de artículos.
type ItemGroup struct {
	ID   int64
	Name string
}

// VatRate tasa de ITBIS.
type VatRate struct {
	ID          int64
	Description string
	Rate        decimal.Decimal // porcentaje
}

// Warehouse almacén.
type Warehouse struct {
	ID      int64
	Name    string
	Address string
}
