package entity

import "github.com/shopspring/decimal"

// Item representa un artículo del inventario tal como lo conoce la consola.
// Es la forma canónica interna; los nombres de campos del servidor se mapean en infrastructure/restapi.
type Item struct {
	ID            int64
	Name          string
	UnitOfMeasure string
	Batch         string
	GroupID       int64
	Barcodes      [3]string // principal, 2 y 3; vacío si no aplica
	Cost          decimal.Decimal
	Prices        [3]decimal.Decimal // precio, precio2, precio3
	ReorderPoint  decimal.Decimal
	VatID         int64
	VatApplicable bool
	WarehouseID   int64
	PhotoFileName string
	Comment       string
	AllowDecimal  bool
	Margin        decimal.Decimal // porcentaje
}

// Price devuelve el precio principal.
func (i Item) Price() decimal.Decimal { return i.Prices[0] }

// EntityID implementa la identidad usada por las caches.
func (i Item) EntityID() int64 { return i.ID }

// ItemInput datos de creación/edición (reemplazo completo) de un artículo.
type ItemInput struct {
	Name          string
	UnitOfMeasure string
	Batch         string
	GroupID       int64
	Barcodes      [3]string
	Cost          decimal.Decimal
	Prices        [3]decimal.Decimal
	ReorderPoint  decimal.Decimal
	VatID         int64
	VatApplicable bool
	WarehouseID   int64
	PhotoFileName string
	Comment       string
	AllowDecimal  bool
	Margin        decimal.Decimal
}
