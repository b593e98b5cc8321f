package inventory

import (
	"context"

	"github.com/jhoicas/inventario-console/internal/application/cache"
	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/internal/domain/repository"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

var movementMessages = cache.Messages{
	FetchFailed:  "Error al cargar movimientos",
	GetFailed:    "Error al obtener movimiento",
	Created:      "Movimiento creado exitosamente",
	CreateFailed: "Error al crear movimiento",
	Updated:      "Movimiento actualizado exitosamente",
	UpdateFailed: "Error al actualizar movimiento",
	Deleted:      "Movimiento eliminado exitosamente",
	DeleteFailed: "Error al eliminar movimiento",
}

// MovementStore cache de movimientos con la ruta adicional de ajuste de inventario.
type MovementStore struct {
	*cache.Store[entity.Movement, entity.MovementInput]
	repo repository.InventoryMovementRepository
	log  *logger.Logger
}

// NewMovementStore construye el store de movimientos de una sesión.
func NewMovementStore(repo repository.InventoryMovementRepository, notifier notify.Publisher, log *logger.Logger) *MovementStore {
	if log == nil {
		log = logger.Nop()
	}
	return &MovementStore{
		Store: cache.New[entity.Movement, entity.MovementInput](repo, notifier, movementMessages, log),
		repo:  repo,
		log:   log,
	}
}

// AdjustInventory registra un ajuste por el endpoint dedicado. Como el servidor no devuelve
// el movimiento creado, siempre se recarga la lista completa en lugar de sintetizar una entrada.
func (s *MovementStore) AdjustInventory(ctx context.Context, in entity.AdjustmentInput) (string, error) {
	msg, err := s.repo.Adjust(ctx, in)
	if err != nil {
		if !domain.AlreadyNotified(err) {
			s.Notify("Error al ajustar inventario", notify.Error)
		}
		return "", err
	}
	if msg == "" {
		msg = "Inventario ajustado exitosamente"
	}
	s.Notify(msg, notify.Success)

	if err := s.FetchAll(ctx); err != nil {
		s.log.Warn().Err(err).Msg("recarga tras ajuste de inventario")
	}
	return msg, nil
}
