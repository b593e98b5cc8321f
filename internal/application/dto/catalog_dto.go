package dto

import "github.com/shopspring/decimal"

// ItemGroupResponse entrada del catálogo de grupos.
type ItemGroupResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// VatResponse tasa de ITBIS.
type VatResponse struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
}

// WarehouseResponse salida de un almacén.
type WarehouseResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}
