package restapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/internal/domain/repository"
)

var (
	_ repository.ItemGroupRepository = (*GroupAPI)(nil)
	_ repository.VatRepository       = (*VatAPI)(nil)
	_ repository.WarehouseRepository = (*WarehouseAPI)(nil)
)

// GroupAPI catálogo de grupos. La ruta conserva la ortografía del backend.
type GroupAPI struct{ c *Client }

// NewGroupAPI construye el adaptador de grupos.
func NewGroupAPI(c *Client) *GroupAPI { return &GroupAPI{c: c} }

// List obtiene todos los grupos.
func (a *GroupAPI) List(ctx context.Context) ([]entity.ItemGroup, error) {
	var dtos []itemGroupDTO
	if err := a.c.Do(ctx, http.MethodGet, "/ItemGruop", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entity.ItemGroup, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, entity.ItemGroup{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

// Create da de alta un grupo nuevo; el servidor asigna el ID.
func (a *GroupAPI) Create(ctx context.Context, name string) (*entity.ItemGroup, error) {
	var d itemGroupDTO
	req := itemGroupDTO{Name: strings.TrimSpace(name)}
	if err := a.c.Do(ctx, http.MethodPost, "/ItemGruop", req, &d); err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = req.Name
	}
	return &entity.ItemGroup{ID: d.ID, Name: d.Name}, nil
}

// VatAPI catálogo de tasas de ITBIS.
type VatAPI struct{ c *Client }

// NewVatAPI construye el adaptador de ITBIS.
func NewVatAPI(c *Client) *VatAPI { return &VatAPI{c: c} }

func (a *VatAPI) List(ctx context.Context) ([]entity.VatRate, error) {
	var dtos []vatDTO
	if err := a.c.Do(ctx, http.MethodGet, "/Vat", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entity.VatRate, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, entity.VatRate{ID: d.ID, Description: d.Description, Rate: d.Rate})
	}
	return out, nil
}

// WarehouseAPI catálogo de almacenes.
type WarehouseAPI struct{ c *Client }

// NewWarehouseAPI construye el adaptador de almacenes.
func NewWarehouseAPI(c *Client) *WarehouseAPI { return &WarehouseAPI{c: c} }

func (a *WarehouseAPI) List(ctx context.Context) ([]entity.Warehouse, error) {
	var dtos []warehouseDTO
	if err := a.c.Do(ctx, http.MethodGet, "/WareHouse", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entity.Warehouse, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, entity.Warehouse{ID: d.ID, Name: d.Name, Address: d.Address})
	}
	return out, nil
}
