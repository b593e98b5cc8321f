package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/inventory"
	"github.com/jhoicas/inventario-console/internal/application/workspace"
	"github.com/jhoicas/inventario-console/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// InventoryHandler movimientos de inventario de la sesión (protegido).
type InventoryHandler struct {
	ws       *workspace.Provider
	sess     SessionService
	docs     *pdf.Generator
	redirect string
	log      *logger.Logger
	now      func() time.Time
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ws *workspace.Provider, sess SessionService, docs *pdf.Generator, redirect string, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{ws: ws, sess: sess, docs: docs, redirect: redirect, log: log, now: time.Now}
}

// List godoc
// @Summary      Movimientos paginados (los más recientes primero)
// @Tags         inventory
// @Produce      json
// @Param        page  query  int  false  "página (1-based)"
// @Success      200   {object}  dto.MovementListResponse
// @Router       /console/movements [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var q dto.PageRequest
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	ws := h.ws.Current(GetConsoleID(c))
	if err := ensureMovements(c.UserContext(), ws); err != nil {
		return writeError(c, err, h.redirect)
	}
	h.warmNames(c, ws)
	return c.JSON(h.page(ws, q.Page))
}

// Refresh vuelve a pedir la lista completa al servidor.
// POST /console/movements/refresh
func (h *InventoryHandler) Refresh(c *fiber.Ctx) error {
	ws := h.ws.Current(GetConsoleID(c))
	if err := ws.Movements.FetchAll(c.UserContext()); err != nil {
		return writeError(c, err, h.redirect)
	}
	return c.JSON(h.page(ws, 0))
}

func (h *InventoryHandler) page(ws *workspace.Workspace, page int) dto.MovementListResponse {
	list := ws.Movements.List()
	visible := paginate(ws.MovementPages, list, page)
	return dto.MovementListResponse{
		Items: movementResponses(visible, ws.Resolver()),
		Page:  pageOf(ws.MovementPages, len(list)),
	}
}

// warmNames carga artículos para resolver nombres; si falla se muestran los respaldos "ID: n".
func (h *InventoryHandler) warmNames(c *fiber.Ctx, ws *workspace.Workspace) {
	if err := ensureItems(c.UserContext(), ws); err != nil {
		h.log.Debug().Err(err).Msg("nombres de artículos no disponibles")
	}
}

// GetByID godoc
// @Summary      Movimiento por ID (cache o servidor)
// @Tags         inventory
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /console/movements/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	ws := h.ws.Current(GetConsoleID(c))
	m, err := ws.Movements.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	return c.JSON(movementResponse(*m, ws.Resolver()))
}

// Create godoc
// @Summary      Registrar movimiento
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "itemId, movementType, quantity, movementDate, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /console/movements [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	input, err := inventory.MovementFromRequest(in, requestIdentity{c})
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	ws := h.ws.Current(GetConsoleID(c))
	m, err := ws.Movements.Create(c.UserContext(), input)
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	ws.Draft.Clear()
	return c.Status(fiber.StatusCreated).JSON(movementResponse(*m, ws.Resolver()))
}

// Update godoc
// @Summary      Reemplazar movimiento
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID"
// @Param        body  body  dto.MovementRequest  true  "movimiento completo"
// @Success      200   {object}  dto.MovementResponse
// @Router       /console/movements/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	input, err := inventory.MovementFromRequest(in, requestIdentity{c})
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	ws := h.ws.Current(GetConsoleID(c))
	m, err := ws.Movements.Update(c.UserContext(), id, input)
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	return c.JSON(movementResponse(*m, ws.Resolver()))
}

// Delete elimina un movimiento.
// DELETE /console/movements/:id
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.ws.Current(GetConsoleID(c)).Movements.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, h.redirect)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Adjust godoc
// @Summary      Ajuste de inventario (entrada/salida con almacén)
// @Description  Si no se indica almacén se usa el del artículo seleccionado por código de barras.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "itemId, movementType, quantity, warehouseId"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /console/movements/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ws := h.ws.Current(GetConsoleID(c))
	if in.WarehouseID == 0 {
		if sel := ws.Draft.Selected(); sel != nil && sel.ID == in.ItemID {
			in.WarehouseID = ws.Draft.WarehouseID()
		}
	}
	input, err := inventory.AdjustmentFromRequest(in, requestIdentity{c})
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	msg, err := ws.Movements.AdjustInventory(c.UserContext(), input)
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	ws.Draft.Clear()
	return c.JSON(dto.MessageResponse{Message: msg})
}

// Report PDF con todos los movimientos cargados.
// GET /console/movements/report.pdf
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	ws := h.ws.Current(GetConsoleID(c))
	if err := ensureMovements(c.UserContext(), ws); err != nil {
		return writeError(c, err, h.redirect)
	}
	h.warmNames(c, ws)
	now := h.now()
	doc, err := h.docs.MovementReport(c.UserContext(), ws.Movements.List(), ws.Resolver(), now, h.sess.DisplayName())
	if err != nil {
		return writeError(c, err, h.redirect)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="movimientos-%s.pdf"`, now.Format("20060102-1504")))
	return c.Send(doc)
}
