package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Los DTOs de este archivo reflejan los nombres de campo exactos del backend
// (iteM_ID, grouP_ID, vaT_Applicable...). Ninguno sale de este paquete.

// flexBool acepta true/false, "Y"/"N", "S"/"N", "true"/"false" y "1"/"0".
type flexBool bool

func (b *flexBool) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		*b = false
		return nil
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err == nil {
		*b = flexBool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("restapi: booleano inválido %s", raw)
	}
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Y", "S", "SI", "SÍ", "TRUE", "1":
		*b = true
	default:
		*b = false
	}
	return nil
}

// yesNo formato de salida de vaT_Applicable.
func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

// flexTime acepta RFC3339 y las fechas sin zona que emite el backend (se asumen UTC).
type flexTime struct{ time.Time }

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *flexTime) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil // null o tipo inesperado: fecha cero
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("restapi: fecha inválida %q", s)
}

// num serializa un decimal como número JSON (no como string).
func num(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// ---------- artículos ----------

type itemDTO struct {
	ID            int64           `json:"iteM_ID"`
	Name          string          `json:"itemName"`
	UnitOfMeasure string          `json:"unitOfMeasure"`
	Batch         string          `json:"batch"`
	GroupID       int64           `json:"grouP_ID"`
	Barcode       string          `json:"barcode"`
	Cost          decimal.Decimal `json:"cost"`
	Price         decimal.Decimal `json:"price"`
	Price2        decimal.Decimal `json:"price2"`
	Price3        decimal.Decimal `json:"price3"`
	ReorderPoint  decimal.Decimal `json:"reorderPoint"`
	VatApplicable flexBool        `json:"vaT_Applicable"`
	WarehouseID   int64           `json:"warehouseID"`
	PhotoFileName string          `json:"photoFileName"`
	Barcode2      string          `json:"barcode2"`
	Barcode3      string          `json:"barcode3"`
	Comment       string          `json:"comment"`
	VatID         int64           `json:"vaT_ID"`
	AllowDecimal  bool            `json:"allowDecimal"`
	Margin        decimal.Decimal `json:"margen"`
}

type saveItemDTO struct {
	Name          string      `json:"itemName"`
	UnitOfMeasure string      `json:"unitOfMeasure"`
	Batch         string      `json:"batch"`
	GroupID       int64       `json:"grouP_ID"`
	Barcode       string      `json:"barcode"`
	Cost          json.Number `json:"cost"`
	Price         json.Number `json:"price"`
	Price2        json.Number `json:"price2"`
	Price3        json.Number `json:"price3"`
	ReorderPoint  json.Number `json:"reorderPoint"`
	VatApplicable string      `json:"vaT_Applicable"`
	WarehouseID   int64       `json:"warehouseID"`
	PhotoFileName string      `json:"photoFileName"`
	Barcode2      string      `json:"barcode2"`
	Barcode3      string      `json:"barcode3"`
	Comment       string      `json:"comment"`
	VatID         int64       `json:"vaT_ID"`
	AllowDecimal  bool        `json:"allowDecimal"`
	Margin        json.Number `json:"margen"`
}

func (d itemDTO) toEntity() entity.Item {
	return entity.Item{
		ID:            d.ID,
		Name:          d.Name,
		UnitOfMeasure: d.UnitOfMeasure,
		Batch:         d.Batch,
		GroupID:       d.GroupID,
		Barcodes:      [3]string{d.Barcode, d.Barcode2, d.Barcode3},
		Cost:          d.Cost,
		Prices:        [3]decimal.Decimal{d.Price, d.Price2, d.Price3},
		ReorderPoint:  d.ReorderPoint,
		VatID:         d.VatID,
		VatApplicable: bool(d.VatApplicable),
		WarehouseID:   d.WarehouseID,
		PhotoFileName: d.PhotoFileName,
		Comment:       d.Comment,
		AllowDecimal:  d.AllowDecimal,
		Margin:        d.Margin,
	}
}

func fromItemInput(in entity.ItemInput) saveItemDTO {
	return saveItemDTO{
		Name:          in.Name,
		UnitOfMeasure: in.UnitOfMeasure,
		Batch:         in.Batch,
		GroupID:       in.GroupID,
		Barcode:       in.Barcodes[0],
		Cost:          num(in.Cost),
		Price:         num(in.Prices[0]),
		Price2:        num(in.Prices[1]),
		Price3:        num(in.Prices[2]),
		ReorderPoint:  num(in.ReorderPoint),
		VatApplicable: yesNo(in.VatApplicable),
		WarehouseID:   in.WarehouseID,
		PhotoFileName: in.PhotoFileName,
		Barcode2:      in.Barcodes[1],
		Barcode3:      in.Barcodes[2],
		Comment:       in.Comment,
		VatID:         in.VatID,
		AllowDecimal:  in.AllowDecimal,
		Margin:        num(in.Margin),
	}
}

// ---------- movimientos ----------

// movementDTO acepta la forma actual (movement_ID, iteM_ID...) y la anterior en camelCase.
type movementDTO struct {
	ID        int64           `json:"movement_ID"`
	ItemID    int64           `json:"iteM_ID"`
	Kind      string          `json:"movement_Type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Date      flexTime        `json:"movement_Date"`
	Reason    *string         `json:"reason"`
	CreatedBy int64           `json:"createdBy"`

	LegacyID     int64    `json:"movementId"`
	LegacyItemID int64    `json:"itemId"`
	LegacyKind   string   `json:"movementType"`
	LegacyDate   flexTime `json:"movementDate"`
}

func (d movementDTO) toEntity() entity.Movement {
	m := entity.Movement{
		ID:        firstNonZero(d.ID, d.LegacyID),
		ItemID:    firstNonZero(d.ItemID, d.LegacyItemID),
		Quantity:  d.Quantity.Abs(),
		Date:      d.Date.Time,
		CreatedBy: d.CreatedBy,
	}
	kind := d.Kind
	if kind == "" {
		kind = d.LegacyKind
	}
	if k, ok := entity.ParseMovementKind(kind); ok {
		m.Kind = k
	} else {
		m.Kind = entity.MovementKind(kind)
	}
	if m.Date.IsZero() {
		m.Date = d.LegacyDate.Time
	}
	if d.Reason != nil {
		m.Reason = *d.Reason
	}
	return m
}

type saveMovementDTO struct {
	ItemID    int64       `json:"iteM_ID"`
	Kind      string      `json:"movement_Type"`
	Quantity  json.Number `json:"quantity"`
	Date      string      `json:"movement_Date"`
	Reason    *string     `json:"reason"`
	CreatedBy int64       `json:"createdBy"`
}

func fromMovementInput(in entity.MovementInput) saveMovementDTO {
	return saveMovementDTO{
		ItemID:    in.ItemID,
		Kind:      string(in.Kind),
		Quantity:  num(in.Quantity),
		Date:      in.Date.UTC().Format(time.RFC3339),
		Reason:    optional(in.Reason),
		CreatedBy: in.CreatedBy,
	}
}

type adjustDTO struct {
	ItemID      int64       `json:"iteM_ID"`
	Kind        string      `json:"movement_Type"`
	Quantity    json.Number `json:"quantity"`
	WarehouseID int64       `json:"warehouseID"`
	ShelfID     int64       `json:"shelF_ID"`
	CreatedBy   int64       `json:"createdBy"`
	Reason      *string     `json:"reason"`
}

func fromAdjustment(in entity.AdjustmentInput) adjustDTO {
	return adjustDTO{
		ItemID:      in.ItemID,
		Kind:        string(in.Kind),
		Quantity:    num(in.Quantity),
		WarehouseID: in.WarehouseID,
		ShelfID:     in.ShelfID,
		CreatedBy:   in.CreatedBy,
		Reason:      optional(in.Reason),
	}
}

type messageDTO struct {
	Message string `json:"message"`
}

// ---------- catálogos ----------

type itemGroupDTO struct {
	ID   int64  `json:"grouP_ID"`
	Name string `json:"grouP_NAME"`
}

type vatDTO struct {
	ID          int64           `json:"id"`
	Description string          `json:"descripcion"`
	Rate        decimal.Decimal `json:"vat"`
}

type warehouseDTO struct {
	ID      int64  `json:"warehouseID"`
	Name    string `json:"warehouseName"`
	Address string `json:"warehouseAddress"`
}

// ---------- autenticación y escaneo ----------

type loginRequestDTO struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginResponseDTO struct {
	UserName string `json:"userName"`
	Token    string `json:"token"`
}

type barcodeScanDTO struct {
	Barcode   string `json:"barcode"`
	ScannedAt string `json:"scannedAt"`
}

type barcodeValidationDTO struct {
	IsValid  bool   `json:"isValid"`
	ItemID   *int64 `json:"itemId"`
	ItemName string `json:"itemName"`
	Message  string `json:"message"`
}

func firstNonZero(a, b int64) int64 {
	if a != 0 {
		return a
	}
	return b
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
