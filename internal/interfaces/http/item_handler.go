package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/view"
	"github.com/jhoicas/inventario-console/internal/application/workspace"
	"github.com/jhoicas/inventario-console/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// ItemHandler artículos de la sesión (protegido).
type ItemHandler struct {
	ws       *workspace.Provider
	docs     *pdf.Generator
	redirect string
	log      *logger.Logger
}

// NewItemHandler construye el handler.
func NewItemHandler(ws *workspace.Provider, docs *pdf.Generator, redirect string, log *logger.Logger) *ItemHandler {
	return &ItemHandler{ws: ws, docs: docs, redirect: redirect, log: log}
}

type itemListQuery struct {
	Q    string `query:"q"`
	Page int    `query:"page"`
}

// List godoc
// @Summary      Artículos filtrados y paginados
// @Description  q busca (sin distinguir mayúsculas ni acentos) en ID, nombre y los tres códigos de barras.
// @Tags         items
// @Produce      json
// @Param        q     query  string  false  "texto de búsqueda"
// @Param        page  query  int     false  "página (1-based)"
// @Success      200   {object}  dto.ItemListResponse
// @Router       /console/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var q itemListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	ws := h.ws.Current(GetConsoleID(c))
	if err := ensureItems(c.UserContext(), ws); err != nil {
		return writeError(c, err, h.redirect)
	}
	h.warmCatalogs(c, ws)

	filtered := view.FilterItems(ws.Items.List(), q.Q)
	visible := paginate(ws.ItemPages, filtered, q.Page)
	r := ws.Resolver()
	out := make([]dto.ItemResponse, 0, len(visible))
	for _, it := range visible {
		out = append(out, itemResponse(it, r))
	}
	return c.JSON(dto.ItemListResponse{Items: out, Page: pageOf(ws.ItemPages, len(filtered))})
}

func (h *ItemHandler) warmCatalogs(c *fiber.Ctx, ws *workspace.Workspace) {
	if err := ensureCatalogs(c.UserContext(), ws); err != nil {
		h.log.Debug().Err(err).Msg("catálogos no disponibles")
	}
}

// GetByID godoc
// @Summary      Artículo por ID
// @Tags         items
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /console/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	ws := h.ws.Current(GetConsoleID(c))
	it, err := ws.Items.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	h.warmCatalogs(c, ws)
	return c.JSON(itemResponse(*it, ws.Resolver()))
}

// LookupBarcode godoc
// @Summary      Buscar artículo por código para el formulario de movimientos
// @Description  Con coincidencia queda seleccionado en el borrador junto con su almacén.
// @Tags         items
// @Produce      json
// @Param        barcode  path  string  true  "código de barras"
// @Success      200  {object}  dto.BarcodeLookupResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /console/items/barcode/{barcode} [get]
func (h *ItemHandler) LookupBarcode(c *fiber.Ctx) error {
	ws := h.ws.Current(GetConsoleID(c))
	it, err := ws.Draft.LookupBarcode(c.UserContext(), c.Params("barcode"))
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	return c.JSON(dto.BarcodeLookupResponse{ItemID: it.ID, ItemName: it.Name, WarehouseID: it.WarehouseID})
}

// Create godoc
// @Summary      Alta de artículo
// @Description  Un groupName que no existe se crea antes del artículo.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /console/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ws := h.ws.Current(GetConsoleID(c))
	if err := h.groupsFor(c, ws, in); err != nil {
		return writeError(c, err, h.redirect)
	}
	it, err := ws.Form.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	return c.Status(fiber.StatusCreated).JSON(itemResponse(*it, ws.Resolver()))
}

// Update godoc
// @Summary      Reemplazar artículo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID"
// @Param        body  body  dto.ItemRequest  true  "artículo completo"
// @Success      200   {object}  dto.ItemResponse
// @Router       /console/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ws := h.ws.Current(GetConsoleID(c))
	if err := h.groupsFor(c, ws, in); err != nil {
		return writeError(c, err, h.redirect)
	}
	it, err := ws.Form.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	return c.JSON(itemResponse(*it, ws.Resolver()))
}

// groupsFor un grupo escrito a mano se compara contra el catálogo; sin catálogo no se puede
// saber si ya existe, así que la carga es obligatoria en ese caso.
func (h *ItemHandler) groupsFor(c *fiber.Ctx, ws *workspace.Workspace, in dto.ItemRequest) error {
	if strings.TrimSpace(in.GroupName) == "" {
		return nil
	}
	return ensureCatalogs(c.UserContext(), ws)
}

// Delete elimina un artículo.
// DELETE /console/items/:id
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.ws.Current(GetConsoleID(c)).Items.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, h.redirect)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Labels hoja de etiquetas con código de barras; acepta el mismo q que List.
// GET /console/items/labels.pdf
func (h *ItemHandler) Labels(c *fiber.Ctx) error {
	ws := h.ws.Current(GetConsoleID(c))
	if err := ensureItems(c.UserContext(), ws); err != nil {
		return writeError(c, err, h.redirect)
	}
	h.warmCatalogs(c, ws)
	list := view.FilterItems(ws.Items.List(), c.Query("q"))
	doc, err := h.docs.ItemLabels(c.UserContext(), list, ws.Resolver())
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, labelsFileName(c.Query("q"))))
	return c.Send(doc)
}

// labelsFileName "etiquetas" o "etiquetas-<filtro>" con el filtro apto para nombre de archivo.
func labelsFileName(query string) string {
	if s := slug.Make(query); s != "" {
		return "etiquetas-" + s
	}
	return "etiquetas"
}
