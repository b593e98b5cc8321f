package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// SessionService casos de uso de sesión que expone el BFF.
type SessionService interface {
	SessionChecker
	Login(ctx context.Context, in dto.LoginRequest) (*entity.Session, error)
	Logout() error
	Describe() dto.SessionResponse
	DisplayName() string
}

// AuthHandler login, logout y estado de sesión.
type AuthHandler struct {
	sess     SessionService
	redirect string
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(sess SessionService, redirect string) *AuthHandler {
	return &AuthHandler{sess: sess, redirect: redirect}
}

// Login godoc
// @Summary      Iniciar sesión contra la API de inventario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "userName, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /console/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	sess, err := h.sess.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/console",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	out := h.sess.Describe()
	out.SessionID = sess.ID
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /console/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sess.Logout(); err != nil {
		return writeError(c, err, h.redirect)
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Path:     "/console",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Session godoc
// @Summary      Estado de la sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /console/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(h.sess.Describe())
}
