package repository

import (
	"context"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// InventoryMovementRepository puerto hacia /InventoryMovements.
type InventoryMovementRepository interface {
	List(ctx context.Context) ([]entity.Movement, error)
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	Create(ctx context.Context, in entity.MovementInput) (*entity.Movement, error)
	Update(ctx context.Context, id int64, in entity.MovementInput) (*entity.Movement, error)
	Delete(ctx context.Context, id int64) error
	// Adjust llama a adjust-inventory; devuelve solo el mensaje de confirmación.
	Adjust(ctx context.Context, in entity.AdjustmentInput) (string, error)
}
