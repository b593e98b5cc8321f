package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/internal/domain/repository"
)

const itemsPath = "/ItemInformation"

var _ repository.ItemRepository = (*ItemAPI)(nil)

// ItemAPI implementación del puerto ItemRepository sobre /ItemInformation.
type ItemAPI struct {
	c *Client
}

// NewItemAPI construye el adaptador de artículos.
func NewItemAPI(c *Client) *ItemAPI {
	return &ItemAPI{c: c}
}

// List obtiene todos los artículos.
func (a *ItemAPI) List(ctx context.Context) ([]entity.Item, error) {
	var dtos []itemDTO
	if err := a.c.Do(ctx, http.MethodGet, itemsPath, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entity.Item, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toEntity())
	}
	return out, nil
}

// GetByID obtiene un artículo por ID.
func (a *ItemAPI) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	return a.getOne(ctx, fmt.Sprintf("%s/%d", itemsPath, id))
}

// GetByBarcode busca el artículo cuyo código coincide exactamente.
func (a *ItemAPI) GetByBarcode(ctx context.Context, barcode string) (*entity.Item, error) {
	return a.getOne(ctx, itemsPath+"/barcode/"+url.PathEscape(barcode))
}

// Create registra un artículo y devuelve el registro confirmado por el servidor.
func (a *ItemAPI) Create(ctx context.Context, in entity.ItemInput) (*entity.Item, error) {
	var d itemDTO
	if err := a.c.Do(ctx, http.MethodPost, itemsPath, fromItemInput(in), &d); err != nil {
		return nil, err
	}
	item := d.toEntity()
	return &item, nil
}

// Update reemplaza el artículo completo.
func (a *ItemAPI) Update(ctx context.Context, id int64, in entity.ItemInput) (*entity.Item, error) {
	var d itemDTO
	if err := a.c.Do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", itemsPath, id), fromItemInput(in), &d); err != nil {
		return nil, err
	}
	item := d.toEntity()
	// Algunos despliegues responden 204 sin cuerpo.
	if item.ID == 0 {
		item = itemFromInput(id, in)
	}
	return &item, nil
}

// Delete elimina un artículo.
func (a *ItemAPI) Delete(ctx context.Context, id int64) error {
	return a.c.Do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", itemsPath, id), nil, nil)
}

func (a *ItemAPI) getOne(ctx context.Context, path string) (*entity.Item, error) {
	var d itemDTO
	if err := a.c.Do(ctx, http.MethodGet, path, nil, &d); err != nil {
		return nil, err
	}
	item := d.toEntity()
	return &item, nil
}

func itemFromInput(id int64, in entity.ItemInput) entity.Item {
	return entity.Item{
		ID:            id,
		Name:          in.Name,
		UnitOfMeasure: in.UnitOfMeasure,
		Batch:         in.Batch,
		GroupID:       in.GroupID,
		Barcodes:      in.Barcodes,
		Cost:          in.Cost,
		Prices:        in.Prices,
		ReorderPoint:  in.ReorderPoint,
		VatID:         in.VatID,
		VatApplicable: in.VatApplicable,
		WarehouseID:   in.WarehouseID,
		PhotoFileName: in.PhotoFileName,
		Comment:       in.Comment,
		AllowDecimal:  in.AllowDecimal,
		Margin:        in.Margin,
	}
}
