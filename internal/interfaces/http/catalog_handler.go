package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/workspace"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// CatalogHandler grupos, ITBIS y almacenes para los desplegables (protegido).
type CatalogHandler struct {
	ws       *workspace.Provider
	redirect string
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(ws *workspace.Provider, redirect string) *CatalogHandler {
	return &CatalogHandler{ws: ws, redirect: redirect}
}

func (h *CatalogHandler) load(c *fiber.Ctx) (*workspace.Workspace, error) {
	ws := h.ws.Current(GetConsoleID(c))
	if err := ensureCatalogs(c.UserContext(), ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// Groups GET /console/catalogs/groups
func (h *CatalogHandler) Groups(c *fiber.Ctx) error {
	ws, err := h.load(c)
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	return c.JSON(mapSlice(ws.Catalogs.Groups(), func(g entity.ItemGroup) dto.ItemGroupResponse {
		return dto.ItemGroupResponse{ID: g.ID, Name: g.Name}
	}))
}

// Vats GET /console/catalogs/vats
func (h *CatalogHandler) Vats(c *fiber.Ctx) error {
	ws, err := h.load(c)
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	return c.JSON(mapSlice(ws.Catalogs.Vats(), func(v entity.VatRate) dto.VatResponse {
		return dto.VatResponse{ID: v.ID, Description: v.Description, Rate: v.Rate}
	}))
}

// Warehouses GET /console/catalogs/warehouses
func (h *CatalogHandler) Warehouses(c *fiber.Ctx) error {
	ws, err := h.load(c)
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	return c.JSON(mapSlice(ws.Catalogs.Warehouses(), func(w entity.Warehouse) dto.WarehouseResponse {
		return dto.WarehouseResponse{ID: w.ID, Name: w.Name, Address: w.Address}
	}))
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
