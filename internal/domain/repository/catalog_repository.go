package repository

import (
	"context"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// ItemGroupRepository puerto hacia /ItemGruop (nombre del backend tal cual).
type ItemGroupRepository interface {
	List(ctx context.Context) ([]entity.ItemGroup, error)
	Create(ctx context.Context, name string) (*entity.ItemGroup, error)
}

// VatRepository catálogo de solo lectura de tasas de ITBIS.
type VatRepository interface {
	List(ctx context.Context) ([]entity.VatRate, error)
}

// WarehouseRepository catálogo de solo lectura de almacenes.
type WarehouseRepository interface {
	List(ctx context.Context) ([]entity.Warehouse, error)
}

// BarcodeRepository validación de códigos escaneados (POST /barcode/scan).
type BarcodeRepository interface {
	Scan(ctx context.Context, barcode string, scannedAt string) (*entity.BarcodeValidation, error)
}
