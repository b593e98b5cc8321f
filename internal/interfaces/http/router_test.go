package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/auth"
	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/application/workspace"
	"github.com/jhoicas/inventario-console/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-console/internal/infrastructure/restapi"
	"github.com/jhoicas/inventario-console/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/inventario-console/internal/interfaces/http"
)

// upstream API REST de inventario simulada.
type upstream struct {
	mu           sync.Mutex
	movementList int32
	itemList     int32
	created      map[string]interface{}
	adjusted     map[string]interface{}
}

func (u *upstream) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/Users/login", func(w http.ResponseWriter, r *http.Request) {
		var cred map[string]string
		_ = json.NewDecoder(r.Body).Decode(&cred)
		if cred["password"] == "mala" || r.Header.Get("Authorization") != "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(), "nameid": "7",
		}).SignedString([]byte("k"))
		require.NoError(t, err)
		writeJSON(w, http.StatusOK, map[string]string{"token": tok, "userName": "ana"})
	})
	mux.HandleFunc("GET /api/InventoryMovements", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&u.movementList, 1)
		_, _ = io.WriteString(w, `[
			{"movement_ID":3,"iteM_ID":1,"movement_Type":"Entrada","quantity":5,"movement_Date":"2024-05-03T10:00:00"},
			{"movement_ID":2,"iteM_ID":99,"movement_Type":"Salida","quantity":1,"movement_Date":"2024-05-02T10:00:00"},
			{"movement_ID":1,"iteM_ID":1,"movement_Type":"ajuste","quantity":2,"movement_Date":"2024-05-01T10:00:00"}
		]`)
	})
	mux.HandleFunc("POST /api/InventoryMovements", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		u.mu.Lock()
		u.created = body
		u.mu.Unlock()
		body["movement_ID"] = 10
		writeJSON(w, http.StatusOK, body)
	})
	mux.HandleFunc("POST /api/InventoryMovements/adjust-inventory", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if q, _ := body["quantity"].(float64); q > 100 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Stock insuficiente"})
			return
		}
		u.mu.Lock()
		u.adjusted = body
		u.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "Inventario ajustado"})
	})
	mux.HandleFunc("GET /api/ItemInformation", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&u.itemList, 1)
		_, _ = io.WriteString(w, `[
			{"iteM_ID":1,"itemName":"Tornillo","grouP_ID":2,"barcode":"750","price":10,"cost":5,"warehouseID":4},
			{"iteM_ID":2,"itemName":"Clavo de acero","barcode":"751","price":1,"cost":0.5}
		]`)
	})
	mux.HandleFunc("GET /api/ItemInformation/barcode/{code}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("code") != "750" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `{"iteM_ID":1,"itemName":"Tornillo","barcode":"750","warehouseID":4}`)
	})
	mux.HandleFunc("DELETE /api/ItemInformation/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("GET /api/ItemGruop", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"grouP_ID":2,"grouP_NAME":"Ferretería"}]`)
	})
	mux.HandleFunc("GET /api/Vat", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"descripcion":"General","vat":18}]`)
	})
	mux.HandleFunc("GET /api/WareHouse", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"warehouseID":4,"warehouseName":"Principal"}]`)
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type console struct {
	app      *fiber.App
	up       *upstream
	notifier *notify.Notifier
	cookie   string // credencial del navegador que inició sesión
}

// newConsole cablea la consola igual que cmd/api, contra la API simulada.
func newConsole(t *testing.T) *console {
	t.Helper()
	up := &upstream{}
	srv := httptest.NewServer(up.handler(t))
	t.Cleanup(srv.Close)

	n := notify.New(notify.WithDefaultDuration(0))
	var sess *auth.SessionUseCase
	client := restapi.NewClient(restapi.Config{BaseURL: srv.URL + "/api"}, restapi.TokenFunc(func() string { return sess.Token() }), n)
	sess = auth.NewSessionUseCase(restapi.NewAuthAPI(client), storage.NewMemorySession(), n)
	client.SetUnauthorizedHandler(sess.HandleUnauthorized)

	provider := workspace.NewProvider(workspace.Repositories{
		Items:      restapi.NewItemAPI(client),
		Movements:  restapi.NewMovementAPI(client),
		Groups:     restapi.NewGroupAPI(client),
		Vats:       restapi.NewVatAPI(client),
		Warehouses: restapi.NewWarehouseAPI(client),
	}, n, 2, nil)
	sess.OnSessionEnd(provider.Reset)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Session:       sess,
		Workspaces:    provider,
		Notifications: n,
		Documents:     pdf.NewGenerator("test"),
		LoginRedirect: "/login",
	})
	return &console{app: app, up: up, notifier: n}
}

func (c *console) do(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	return c.doWith(t, func(req *http.Request) {
		if c.cookie != "" {
			req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: c.cookie})
		}
	}, method, path, body)
}

// doWith ejecuta la petición dejando que prepare decida qué credencial presenta.
func (c *console) doWith(t *testing.T, prepare func(*http.Request), method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prepare != nil {
		prepare(req)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func (c *console) login(t *testing.T) dto.SessionResponse {
	t.Helper()
	resp, raw := c.do(t, http.MethodPost, "/console/login", dto.LoginRequest{UserName: "ana", Password: "secreta"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	c.cookie = ""
	for _, ck := range resp.Cookies() {
		if ck.Name == apphttp.SessionCookie {
			c.cookie = ck.Value
			assert.True(t, ck.HttpOnly)
		}
	}
	require.NotEmpty(t, c.cookie)
	var sess dto.SessionResponse
	require.NoError(t, json.Unmarshal(raw, &sess))
	return sess
}

func (c *console) messages() []string {
	var out []string
	for _, a := range c.notifier.Active() {
		out = append(out, a.Message)
	}
	return out
}

func TestRouter_SinSesionRedirigeALogin(t *testing.T) {
	c := newConsole(t)
	resp, raw := c.do(t, http.MethodGet, "/console/movements", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "UNAUTHENTICATED", body.Code)
	assert.Equal(t, "/login", body.Redirect)
}

func TestRouter_LoginDevuelveSesion(t *testing.T) {
	c := newConsole(t)
	resp, raw := c.do(t, http.MethodPost, "/console/login", dto.LoginRequest{UserName: "ana", Password: "secreta"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sess dto.SessionResponse
	require.NoError(t, json.Unmarshal(raw, &sess))
	assert.True(t, sess.Authenticated)
	assert.Equal(t, "ana", sess.UserName)
	require.NotNil(t, sess.UserID)
	assert.Equal(t, int64(7), *sess.UserID)
	assert.Contains(t, c.messages(), "Bienvenido, ana")
}

func TestRouter_LoginInvalidoEs400(t *testing.T) {
	c := newConsole(t)
	resp, raw := c.do(t, http.MethodPost, "/console/login", dto.LoginRequest{UserName: "ana"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "password")
}

func TestRouter_MovimientosPaginadosConNombres(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp, raw := c.do(t, http.MethodGet, "/console/movements?page=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var page dto.MovementListResponse
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, 2, page.Page.Page)
	assert.Equal(t, 3, page.Page.Total)
	assert.Equal(t, 2, page.Page.TotalPages)
	assert.False(t, page.Page.HasNext)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Tornillo", page.Items[0].ItemName)
	assert.Equal(t, "Ajuste", page.Items[0].TypeLabel)

	resp, raw = c.do(t, http.MethodGet, "/console/movements?page=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &page))
	require.Len(t, page.Items, 2)
	assert.Equal(t, "ID: 99", page.Items[1].ItemName)

	// La segunda lectura sale de la cache.
	assert.Equal(t, int32(1), atomic.LoadInt32(&c.up.movementList))
	assert.Equal(t, int32(1), atomic.LoadInt32(&c.up.itemList))
}

func TestRouter_RefreshVuelveAPedirLaLista(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	c.do(t, http.MethodGet, "/console/movements", nil)
	resp, _ := c.do(t, http.MethodPost, "/console/movements/refresh", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&c.up.movementList))
}

func TestRouter_CrearMovimientoAtribuyeUsuarioDeSesion(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp, raw := c.do(t, http.MethodPost, "/console/movements", map[string]interface{}{
		"itemId": 1, "movementType": "entrada", "quantity": 5, "movementDate": "2024-05-04T09:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var m dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, int64(10), m.ID)
	assert.Equal(t, "Entrada", m.Type)

	c.up.mu.Lock()
	assert.Equal(t, float64(7), c.up.created["createdBy"])
	assert.Equal(t, "Entrada", c.up.created["movement_Type"])
	c.up.mu.Unlock()
	assert.Contains(t, c.messages(), "Movimiento creado exitosamente")
}

func TestRouter_MovimientoInvalidoNoLlamaALaAPI(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp, raw := c.do(t, http.MethodPost, "/console/movements", map[string]interface{}{
		"itemId": 0, "movementType": "traslado", "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Contains(t, body.Fields, "itemId")
	assert.Contains(t, body.Fields, "movementType")
	assert.Contains(t, body.Fields, "quantity")

	c.up.mu.Lock()
	assert.Nil(t, c.up.created)
	c.up.mu.Unlock()
}

func TestRouter_AjusteUsaAlmacenDelCodigoEscaneado(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp, raw := c.do(t, http.MethodGet, "/console/items/barcode/750", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var found dto.BarcodeLookupResponse
	require.NoError(t, json.Unmarshal(raw, &found))
	assert.Equal(t, int64(4), found.WarehouseID)

	resp, raw = c.do(t, http.MethodPost, "/console/movements/adjust", map[string]interface{}{
		"itemId": 1, "movementType": "Entrada", "quantity": 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var msg dto.MessageResponse
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "Inventario ajustado", msg.Message)

	c.up.mu.Lock()
	assert.Equal(t, float64(4), c.up.adjusted["warehouseID"])
	c.up.mu.Unlock()
	// El ajuste siempre recarga la lista.
	assert.Equal(t, int32(1), atomic.LoadInt32(&c.up.movementList))
}

func TestRouter_AjusteSinStockDevuelveMensajeDelServidor(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp, raw := c.do(t, http.MethodPost, "/console/movements/adjust", map[string]interface{}{
		"itemId": 1, "movementType": "Salida", "quantity": 500, "warehouseId": 4,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "BAD_REQUEST", body.Code)
	assert.Equal(t, "Stock insuficiente", body.Message)
	assert.Contains(t, c.messages(), "Stock insuficiente")
	assert.Zero(t, atomic.LoadInt32(&c.up.movementList))
}

func TestRouter_CodigoInexistenteEs404(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp, _ := c.do(t, http.MethodGet, "/console/items/barcode/000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ArticulosFiltradosSinAcentos(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp, raw := c.do(t, http.MethodGet, "/console/items?q=CLAVO", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var page dto.ItemListResponse
	require.NoError(t, json.Unmarshal(raw, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].ID)

	resp, raw = c.do(t, http.MethodGet, "/console/items?q=750", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ferretería", page.Items[0].GroupName)
	assert.Equal(t, "Principal", page.Items[0].WarehouseName)
}

func TestRouter_ArticuloSinNombreEs400(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp, raw := c.do(t, http.MethodPost, "/console/items", map[string]interface{}{"cost": 3})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Contains(t, body.Fields, "itemName")
}

func TestRouter_CatalogosYTablero(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp, raw := c.do(t, http.MethodGet, "/console/catalogs/groups", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var groups []dto.ItemGroupResponse
	require.NoError(t, json.Unmarshal(raw, &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "Ferretería", groups[0].Name)

	resp, raw = c.do(t, http.MethodGet, "/console/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.DashboardSummaryDTO
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, 1, summary.Entradas)
	assert.Equal(t, 1, summary.Salidas)
	assert.Equal(t, 1, summary.Ajustes)
	assert.Equal(t, 3, summary.Total)
	assert.Len(t, summary.Recent, 3)
	assert.Equal(t, 2, summary.ItemsLoaded)
}

func TestRouter_DocumentosPDF(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	for _, path := range []string{"/console/movements/report.pdf", "/console/items/labels.pdf"} {
		resp, raw := c.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), path)
	}

	resp, _ := c.do(t, http.MethodGet, "/console/items/labels.pdf?q=Tornillo%20Ac%C3%A9ro", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="etiquetas-tornillo-acero.pdf"`, resp.Header.Get("Content-Disposition"))
}

func TestRouter_DescartarNotificacion(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp, raw := c.do(t, http.MethodGet, "/console/notifications", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var active []notify.Notification
	require.NoError(t, json.Unmarshal(raw, &active))
	require.NotEmpty(t, active)

	resp, _ = c.do(t, http.MethodDelete, "/console/notifications/"+active[0].ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = c.do(t, http.MethodDelete, "/console/notifications/"+active[0].ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_401DeLaAPICierraSesion(t *testing.T) {
	c := newConsole(t)
	c.login(t)
	c.do(t, http.MethodGet, "/console/items", nil)

	resp, raw := c.do(t, http.MethodDelete, "/console/items/13", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "/login", body.Redirect)
	assert.Contains(t, strings.Join(c.messages(), "|"), "Sesión expirada")

	resp, _ = c.do(t, http.MethodGet, "/console/session", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// El nuevo login parte de caches vacías.
	c.login(t)
	c.do(t, http.MethodGet, "/console/items", nil)
	assert.Equal(t, int32(2), atomic.LoadInt32(&c.up.itemList))
}

func TestRouter_SoloElNavegadorDelLoginUsaLaSesion(t *testing.T) {
	c := newConsole(t)
	sess := c.login(t)
	require.NotEmpty(t, sess.SessionID)

	resp, _ := c.doWith(t, nil, http.MethodGet, "/console/movements", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = c.doWith(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: "adivinada"})
	}, http.MethodGet, "/console/movements", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = c.doWith(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+sess.SessionID)
	}, http.MethodGet, "/console/movements", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = c.do(t, http.MethodGet, "/console/movements", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_NuevoLoginDescartaCachesDeLaSesionAnterior(t *testing.T) {
	c := newConsole(t)
	c.login(t)
	c.do(t, http.MethodGet, "/console/movements", nil)
	previous := c.cookie

	c.login(t)
	assert.NotEqual(t, previous, c.cookie)
	resp, _ := c.do(t, http.MethodGet, "/console/movements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&c.up.movementList))

	resp, _ = c.doWith(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: previous})
	}, http.MethodGet, "/console/movements", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_LoginRechazadoConservaLaSesionVigente(t *testing.T) {
	c := newConsole(t)
	c.login(t)
	c.do(t, http.MethodGet, "/console/movements", nil)

	resp, raw := c.do(t, http.MethodPost, "/console/login", dto.LoginRequest{UserName: "ana", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "UNAUTHENTICATED", body.Code)
	assert.Contains(t, c.messages(), "Usuario o contraseña incorrectos")
	assert.NotContains(t, strings.Join(c.messages(), "|"), "Sesión expirada")

	resp, _ = c.do(t, http.MethodGet, "/console/movements", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&c.up.movementList))
}

func TestRouter_LogoutInvalidaLaCookie(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp, _ := c.do(t, http.MethodPost, "/console/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = c.do(t, http.MethodGet, "/console/session", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
