package inventory

import (
	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// MovementFromRequest valida el formulario y lo convierte al registro canónico.
// Si createdBy viene vacío se atribuye al usuario de la sesión.
func MovementFromRequest(in dto.MovementRequest, who Identity) (entity.MovementInput, error) {
	if err := dto.Validate(in); err != nil {
		return entity.MovementInput{}, err
	}
	kind, _ := entity.ParseMovementKind(in.MovementType)
	createdBy, err := resolveCreator(in.CreatedBy, who)
	if err != nil {
		return entity.MovementInput{}, err
	}
	return entity.MovementInput{
		ItemID:    in.ItemID,
		Kind:      kind,
		Quantity:  in.Quantity,
		Date:      in.MovementDate,
		Reason:    in.Reason,
		CreatedBy: createdBy,
	}, nil
}

// AdjustmentFromRequest igual que MovementFromRequest para el endpoint de ajuste.
func AdjustmentFromRequest(in dto.AdjustInventoryRequest, who Identity) (entity.AdjustmentInput, error) {
	if err := dto.Validate(in); err != nil {
		return entity.AdjustmentInput{}, err
	}
	kind, _ := entity.ParseMovementKind(in.MovementType)
	createdBy, err := resolveCreator(in.CreatedBy, who)
	if err != nil {
		return entity.AdjustmentInput{}, err
	}
	return entity.AdjustmentInput{
		ItemID:      in.ItemID,
		Kind:        kind,
		Quantity:    in.Quantity,
		WarehouseID: in.WarehouseID,
		ShelfID:     in.ShelfID,
		CreatedBy:   createdBy,
		Reason:      in.Reason,
	}, nil
}

func resolveCreator(given int64, who Identity) (int64, error) {
	if given > 0 {
		return given, nil
	}
	if who != nil {
		if id, ok := who.CurrentUserID(); ok && id > 0 {
			return id, nil
		}
	}
	return 0, domain.NewValidationError("createdBy", "debe ser mayor a 0")
}
