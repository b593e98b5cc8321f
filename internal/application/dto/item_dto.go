package dto

import "github.com/shopspring/decimal"

// ItemRequest formulario de artículo. Todo es opcional salvo el nombre.
type ItemRequest struct {
	ItemName            string          `json:"itemName" validate:"required,max=200"`
	UnitOfMeasure       string          `json:"unitOfMeasure" validate:"max=200"`
	Batch               string          `json:"batch" validate:"max=200"`
	GroupID             int64           `json:"groupId" validate:"gte=0"`
	GroupName           string          `json:"groupName" validate:"max=200"`
	Barcode             string          `json:"barcode" validate:"max=200"`
	AutoGenerateBarcode bool            `json:"autoGenerateBarcode"`
	Cost                decimal.Decimal `json:"cost" validate:"gte=0"`
	Price               decimal.Decimal `json:"price" validate:"gte=0"`
	Price2              decimal.Decimal `json:"price2" validate:"gte=0"`
	Price3              decimal.Decimal `json:"price3" validate:"gte=0"`
	AutoCalculatePrice  bool            `json:"autoCalculatePrice"`
	ReorderPoint        decimal.Decimal `json:"reorderPoint" validate:"gte=0"`
	VatApplicable       bool            `json:"vatApplicable"`
	WarehouseID         int64           `json:"warehouseId" validate:"gte=0"`
	PhotoFileName       string          `json:"photoFileName" validate:"max=200"`
	Barcode2            string          `json:"barcode2" validate:"max=255"`
	Barcode3            string          `json:"barcode3" validate:"max=255"`
	Comment             string          `json:"comment"`
	VatID               int64           `json:"vatId" validate:"gte=0"`
	AllowDecimal        bool            `json:"allowDecimal"`
	Margin              decimal.Decimal `json:"margen" validate:"gte=0"`
}

// ItemResponse artículo con grupo y almacén resueltos.
type ItemResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Batch         string          `json:"batch"`
	GroupID       int64           `json:"group_id"`
	GroupName     string          `json:"group_name"`
	Barcode       string          `json:"barcode"`
	Barcode2      string          `json:"barcode2,omitempty"`
	Barcode3      string          `json:"barcode3,omitempty"`
	Cost          decimal.Decimal `json:"cost"`
	Price         decimal.Decimal `json:"price"`
	Price2        decimal.Decimal `json:"price2"`
	Price3        decimal.Decimal `json:"price3"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	VatID         int64           `json:"vat_id"`
	VatLabel      string          `json:"vat_label"`
	VatApplicable bool            `json:"vat_applicable"`
	WarehouseID   int64           `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	PhotoFileName string          `json:"photo_file_name,omitempty"`
	Comment       string          `json:"comment,omitempty"`
	AllowDecimal  bool            `json:"allow_decimal"`
	Margin        decimal.Decimal `json:"margen"`
}

// ItemListResponse página de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
