package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	apphttp "github.com/jhoicas/inventario-console/internal/interfaces/http"
)

// fakeSession sesión vigente cuyo dueño presenta consoleID.
type fakeSession struct {
	consoleID string
	userID    int64
}

func (f fakeSession) Owns(id string) bool          { return f.consoleID != "" && id == f.consoleID }
func (f fakeSession) CurrentUserID() (int64, bool) { return f.userID, f.userID > 0 }

// buildProtectedApp aplicación mínima con RequireSession delante de un handler que
// devuelve el usuario cargado en locals.
func buildProtectedApp(sess apphttp.SessionChecker) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.RequireSession(sess, "/login"),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "user_id": apphttp.GetUserID(c), "console_id": apphttp.GetConsoleID(c)})
		},
	)
	return app
}

func doGet(t *testing.T, app *fiber.App, path string, prepare ...func(*http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, p := range prepare {
		p(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireSession_SinSesionRetorna401ConRedireccion(t *testing.T) {
	resp := doGet(t, buildProtectedApp(fakeSession{}), "/protected")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UNAUTHENTICATED", body.Code)
	assert.Equal(t, "/login", body.Redirect)
}

func withCookie(v string) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: v}) }
}

func TestRequireSession_SesionAjenaRetorna401(t *testing.T) {
	app := buildProtectedApp(fakeSession{consoleID: "abc", userID: 42})

	for name, prepare := range map[string]func(*http.Request){
		"sin credencial":   func(*http.Request) {},
		"cookie distinta":  withCookie("otra"),
		"bearer distinto":  func(r *http.Request) { r.Header.Set("Authorization", "Bearer otra") },
		"esquema inválido": func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") },
	} {
		resp := doGet(t, app, "/protected", prepare)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, name)
	}
}

func TestRequireSession_CookieDelDuenoCargaUsuario(t *testing.T) {
	resp := doGet(t, buildProtectedApp(fakeSession{consoleID: "abc", userID: 42}), "/protected", withCookie("abc"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(42), body["user_id"])
	assert.Equal(t, "abc", body["console_id"])
}

func TestRequireSession_BearerDelDuenoSinUsuarioIgualPasa(t *testing.T) {
	resp := doGet(t, buildProtectedApp(fakeSession{consoleID: "abc"}), "/protected", func(r *http.Request) {
		r.Header.Set("Authorization", "bearer abc")
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(0), body["user_id"])
}
