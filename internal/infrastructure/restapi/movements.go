package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/internal/domain/repository"
)

const movementsPath = "/InventoryMovements"

var _ repository.InventoryMovementRepository = (*MovementAPI)(nil)

// MovementAPI implementación del puerto InventoryMovementRepository.
type MovementAPI struct {
	c *Client
}

// NewMovementAPI construye el adaptador de movimientos.
func NewMovementAPI(c *Client) *MovementAPI {
	return &MovementAPI{c: c}
}

// List obtiene todos los movimientos.
func (a *MovementAPI) List(ctx context.Context) ([]entity.Movement, error) {
	var dtos []movementDTO
	if err := a.c.Do(ctx, http.MethodGet, movementsPath, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entity.Movement, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toEntity())
	}
	return out, nil
}

// GetByID obtiene un movimiento por ID.
func (a *MovementAPI) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	var d movementDTO
	if err := a.c.Do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", movementsPath, id), nil, &d); err != nil {
		return nil, err
	}
	m := d.toEntity()
	return &m, nil
}

// Create registra un movimiento por la ruta simple (devuelve el registro creado).
func (a *MovementAPI) Create(ctx context.Context, in entity.MovementInput) (*entity.Movement, error) {
	var d movementDTO
	if err := a.c.Do(ctx, http.MethodPost, movementsPath, fromMovementInput(in), &d); err != nil {
		return nil, err
	}
	m := d.toEntity()
	return &m, nil
}

// Update reemplaza un movimiento.
func (a *MovementAPI) Update(ctx context.Context, id int64, in entity.MovementInput) (*entity.Movement, error) {
	var d movementDTO
	if err := a.c.Do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", movementsPath, id), fromMovementInput(in), &d); err != nil {
		return nil, err
	}
	m := d.toEntity()
	if m.ID == 0 {
		m = entity.Movement{
			ID: id, ItemID: in.ItemID, Kind: in.Kind, Quantity: in.Quantity,
			Date: in.Date, Reason: in.Reason, CreatedBy: in.CreatedBy,
		}
	}
	return &m, nil
}

// Delete elimina un movimiento.
func (a *MovementAPI) Delete(ctx context.Context, id int64) error {
	return a.c.Do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", movementsPath, id), nil, nil)
}

// Adjust llama a adjust-inventory. El servidor solo devuelve {message}.
func (a *MovementAPI) Adjust(ctx context.Context, in entity.AdjustmentInput) (string, error) {
	var res messageDTO
	if err := a.c.Do(ctx, http.MethodPost, movementsPath+"/adjust-inventory", fromAdjustment(in), &res); err != nil {
		return "", err
	}
	return res.Message, nil
}
