// Package items agrupa los casos de uso de artículos: la cache, el formulario de alta/edición
// y los catálogos de apoyo (grupos, ITBIS, almacenes).
package items

import (
	"github.com/jhoicas/inventario-console/internal/application/cache"
	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/internal/domain/repository"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

var itemMessages = cache.Messages{
	FetchFailed:  "Error al cargar artículos",
	GetFailed:    "Error al obtener artículo",
	Created:      "Artículo creado exitosamente",
	CreateFailed: "Error al crear artículo",
	Updated:      "Artículo actualizado exitosamente",
	UpdateFailed: "Error al actualizar artículo",
	Deleted:      "Artículo eliminado exitosamente",
	DeleteFailed: "Error al eliminar artículo",
}

// ItemStore cache de artículos de una sesión.
type ItemStore struct {
	*cache.Store[entity.Item, entity.ItemInput]
}

// NewItemStore construye el store de artículos.
func NewItemStore(repo repository.ItemRepository, notifier notify.Publisher, log *logger.Logger) *ItemStore {
	return &ItemStore{Store: cache.New[entity.Item, entity.ItemInput](repo, notifier, itemMessages, log)}
}
