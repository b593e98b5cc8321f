package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/notify"
)

// NotificationCenter lectura y descarte de avisos activos.
type NotificationCenter interface {
	Active() []notify.Notification
	Dismiss(id string) bool
}

// NotificationHandler expone el canal de notificaciones al navegador (protegido).
type NotificationHandler struct {
	center NotificationCenter
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(center NotificationCenter) *NotificationHandler {
	return &NotificationHandler{center: center}
}

// List avisos visibles en orden de llegada.
// GET /console/notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.center.Active())
}

// Dismiss cierra un aviso antes de que expire.
// DELETE /console/notifications/:id
func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	if !h.center.Dismiss(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "notificación no encontrada"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
