package repository

import (
	"context"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// ItemRepository puerto hacia /ItemInformation en la API REST (DIP).
type ItemRepository interface {
	List(ctx context.Context) ([]entity.Item, error)
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Item, error)
	Create(ctx context.Context, in entity.ItemInput) (*entity.Item, error)
	Update(ctx context.Context, id int64, in entity.ItemInput) (*entity.Item, error)
	Delete(ctx context.Context, id int64) error
}
