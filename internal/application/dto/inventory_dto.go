package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementRequest formulario de alta/edición de un movimiento.
// CreatedBy cero se completa con el usuario de la sesión.
type MovementRequest struct {
	ItemID       int64           `json:"itemId" validate:"gt=0"`
	MovementType string          `json:"movementType" validate:"required,movement_kind"`
	Quantity     decimal.Decimal `json:"quantity" validate:"gt=0"`
	MovementDate time.Time       `json:"movementDate" validate:"required"`
	Reason       string          `json:"reason" validate:"max=500"`
	CreatedBy    int64           `json:"createdBy" validate:"gte=0"`
}

// AdjustInventoryRequest formulario del ajuste de inventario (entrada/salida con almacén).
type AdjustInventoryRequest struct {
	ItemID       int64           `json:"itemId" validate:"gt=0"`
	MovementType string          `json:"movementType" validate:"required,stock_direction"`
	Quantity     decimal.Decimal `json:"quantity" validate:"gt=0"`
	WarehouseID  int64           `json:"warehouseId" validate:"gte=0"`
	ShelfID      int64           `json:"shelfId" validate:"gte=0"`
	Reason       string          `json:"reason" validate:"max=500"`
	CreatedBy    int64           `json:"createdBy" validate:"gte=0"`
}

// MovementResponse movimiento con nombres resueltos para mostrar.
type MovementResponse struct {
	ID        int64           `json:"id"`
	ItemID    int64           `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Type      string          `json:"type"`
	TypeLabel string          `json:"type_label"`
	Quantity  decimal.Decimal `json:"quantity"`
	Date      time.Time       `json:"date"`
	Reason    string          `json:"reason,omitempty"`
	CreatedBy int64           `json:"created_by"`
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// BarcodeLookupResponse resultado de buscar un artículo por código en el formulario de movimientos.
type BarcodeLookupResponse struct {
	ItemID      int64  `json:"item_id"`
	ItemName    string `json:"item_name"`
	WarehouseID int64  `json:"warehouse_id"`
}
