package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/workspace"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// DashboardHandler resumen de la pantalla de inicio.
type DashboardHandler struct {
	ws       *workspace.Provider
	redirect string
	log      *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(ws *workspace.Provider, redirect string, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{ws: ws, redirect: redirect, log: log}
}

// GetSummary conteos por tipo de movimiento y los cinco más recientes.
// GET /console/dashboard
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	ws := h.ws.Current(GetConsoleID(c))
	if err := ensureMovements(c.UserContext(), ws); err != nil {
		return writeError(c, err, h.redirect)
	}
	if err := ensureItems(c.UserContext(), ws); err != nil {
		h.log.Debug().Err(err).Msg("nombres de artículos no disponibles")
	}

	s := ws.Dashboard()
	return c.JSON(dto.DashboardSummaryDTO{
		Entradas:    s.Entradas,
		Salidas:     s.Salidas,
		Ajustes:     s.Ajustes,
		Total:       s.Total,
		Recent:      movementResponses(s.Recent, ws.Resolver()),
		ItemsLoaded: len(ws.Items.List()),
	})
}
