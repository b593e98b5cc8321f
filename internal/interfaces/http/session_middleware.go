package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie cookie HttpOnly con la credencial de la consola emitida en el login.
const SessionCookie = "console_session"

// Locals keys para el usuario y la credencial de la consola.
const (
	LocalUserID    = "user_id"
	LocalConsoleID = "console_id"
)

// SessionChecker lo que el middleware necesita de la sesión.
type SessionChecker interface {
	Owns(consoleID string) bool
	CurrentUserID() (int64, bool)
}

// RequireSession corta con 401 y la ruta de login cuando el llamador no presenta la
// credencial del último login (cookie o "Authorization: Bearer") o la sesión venció.
func RequireSession(sess SessionChecker, redirect string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		consoleID := credential(c)
		if !sess.Owns(consoleID) {
			return unauthenticated(c, redirect)
		}
		c.Locals(LocalConsoleID, consoleID)
		if id, ok := sess.CurrentUserID(); ok {
			c.Locals(LocalUserID, id)
		}
		return c.Next()
	}
}

func credential(c *fiber.Ctx) string {
	if v := c.Cookies(SessionCookie); v != "" {
		return v
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserID devuelve el ID del usuario (después de RequireSession).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

// GetConsoleID devuelve la credencial validada por RequireSession.
func GetConsoleID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalConsoleID).(string)
	return v
}

// requestIdentity usuario de la petición como inventory.Identity.
type requestIdentity struct{ c *fiber.Ctx }

func (r requestIdentity) CurrentUserID() (int64, bool) {
	id := GetUserID(r.c)
	return id, id > 0
}
