package inventory

import (
	"context"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// ItemFinder búsqueda de artículos por código de barras (lo cumple restapi.ItemAPI).
type ItemFinder interface {
	GetByBarcode(ctx context.Context, barcode string) (*entity.Item, error)
}

// Identity usuario autenticado; atribuye las escrituras cuando el formulario no trae createdBy.
type Identity interface {
	CurrentUserID() (int64, bool)
}
