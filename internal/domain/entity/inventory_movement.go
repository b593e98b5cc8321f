package entity

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento de inventario.
type MovementKind string

// Tipos de movimiento. Ajuste se conserva para mostrar registros históricos.
const (
	MovementEntrada MovementKind = "Entrada"
	MovementSalida  MovementKind = "Salida"
	MovementAjuste  MovementKind = "Ajuste"
)

// ParseMovementKind normaliza el tipo recibido (mayúsculas/minúsculas indistintas).
func ParseMovementKind(s string) (MovementKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entrada":
		return MovementEntrada, true
	case "salida":
		return MovementSalida, true
	case "ajuste":
		return MovementAjuste, true
	}
	return MovementKind(s), false
}

// Label etiqueta para mostrar: primera letra en mayúscula.
func (k MovementKind) Label() string {
	s := string(k)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Movement representa un movimiento de inventario (entrada, salida o ajuste histórico).
type Movement struct {
	ID        int64
	ItemID    int64
	Kind      MovementKind
	Quantity  decimal.Decimal // siempre positivo
	Date      time.Time
	Reason    string
	CreatedBy int64
}

// EntityID implementa la identidad usada por las caches.
func (m Movement) EntityID() int64 { return m.ID }

// MovementInput datos para crear o reemplazar un movimiento.
type MovementInput struct {
	ItemID    int64
	Kind      MovementKind
	Quantity  decimal.Decimal
	Date      time.Time
	Reason    string
	CreatedBy int64
}

// AdjustmentInput datos para el endpoint de ajuste de inventario.
// El servidor solo confirma con un mensaje; no devuelve el movimiento creado.
type AdjustmentInput struct {
	ItemID      int64
	Kind        MovementKind
	Quantity    decimal.Decimal
	WarehouseID int64
	ShelfID     int64
	CreatedBy   int64
	Reason      string
}
