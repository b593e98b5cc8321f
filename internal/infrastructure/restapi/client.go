// Package restapi es el adaptador hacia la API REST externa de inventario.
// Centraliza el token Bearer, la clasificación de errores HTTP y el mapeo entre
// los nombres de campos del servidor y las entidades canónicas de la consola.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

const maxResponseBytes = 8 << 20

// TokenSource devuelve el token Bearer vigente ("" si no hay sesión).
type TokenSource interface {
	Token() string
}

// TokenFunc adapta una función a TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Config opciones del cliente.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client envoltorio HTTP. Notifica cada fallo por el canal transversal y siempre
// devuelve el error al llamador para que pueda mantener abierto su formulario.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	notifier       notify.Publisher
	onUnauthorized func()
	log            *logger.Logger
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUnauthorizedHandler registra el manejador de 401 (cierre de sesión + redirección).
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient construye el cliente. tokens y notifier pueden ser nil.
func NewClient(cfg Config, tokens TokenSource, notifier notify.Publisher, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		notifier:   notifier,
		log:        logger.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetUnauthorizedHandler permite cablear el manejador después de construir la sesión.
func (c *Client) SetUnauthorizedHandler(fn func()) { c.onUnauthorized = fn }

// errorBody formas conocidas de error del backend. El endpoint de ajuste reporta
// las validaciones de stock en "error" en lugar de "message".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Title   string `json:"title"`
}

func (b errorBody) text() string {
	for _, s := range []string{b.Message, b.Error, b.Title} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Do ejecuta method sobre path (relativo a la base /api). body se serializa a JSON si no es nil;
// la respuesta se decodifica en out si out no es nil y el cuerpo no está vacío.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.do(ctx, method, path, body, out, true)
}

// do con withToken=false no adjunta el Bearer (login): un token viejo no debe
// convertir un rechazo de credenciales en un cierre de sesión.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, withToken bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("restapi: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("restapi: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	token := ""
	if withToken && c.tokens != nil {
		token = c.tokens.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := &domain.APIError{Kind: domain.KindNetwork, Message: "No se pudo conectar con el servidor", Err: err}
		if ctx.Err() != nil {
			apiErr.Err = ctx.Err()
		}
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("error de red")
		c.publish(apiErr)
		return apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		apiErr := &domain.APIError{Kind: domain.KindNetwork, Status: resp.StatusCode, Message: "Respuesta incompleta del servidor", Err: err}
		c.publish(apiErr)
		return apiErr
	}

	if resp.StatusCode >= 400 {
		return c.handleStatus(method, path, resp.StatusCode, raw, token != "")
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("restapi: deserializar respuesta %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) handleStatus(method, path string, status int, raw []byte, hadToken bool) error {
	var eb errorBody
	serverMsg := ""
	if err := json.Unmarshal(raw, &eb); err == nil {
		serverMsg = eb.text()
	} else {
		// ASP.NET devuelve a veces el mensaje como string JSON plano.
		var plain string
		if json.Unmarshal(raw, &plain) == nil {
			serverMsg = plain
		}
	}
	kind := domain.ClassifyStatus(status)

	apiErr := &domain.APIError{Kind: kind, Status: status, Message: userMessage(kind, status, serverMsg)}
	c.log.Warn().Str("method", method).Str("path", path).Int("status", status).Str("kind", string(kind)).Msg(apiErr.Message)

	if kind == domain.KindUnauthorized {
		// Sin token fue un rechazo de credenciales: lo informa el caso de uso de login.
		if hadToken {
			c.publish(apiErr)
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
		return apiErr
	}
	c.publish(apiErr)
	return apiErr
}

func (c *Client) publish(e *domain.APIError) {
	if c.notifier == nil {
		return
	}
	sev := notify.Error
	if e.Kind == domain.KindUnauthorized {
		sev = notify.Warning
	}
	c.notifier.Notify(e.Message, sev)
	e.Notified = true
}

// userMessage mensaje para el usuario según la categoría; prioriza el texto del backend cuando aporta detalle.
func userMessage(kind domain.ErrorKind, status int, serverMsg string) string {
	switch kind {
	case domain.KindBadRequest:
		if serverMsg != "" {
			return serverMsg
		}
		return "Solicitud inválida. Revise los datos enviados"
	case domain.KindUnauthorized:
		return "Sesión expirada. Inicie sesión nuevamente"
	case domain.KindForbidden:
		return "No tiene permisos para realizar esta acción"
	case domain.KindNotFound:
		if serverMsg != "" {
			return serverMsg
		}
		return "Recurso no encontrado"
	case domain.KindServer:
		if serverMsg != "" {
			return "Error del servidor: " + serverMsg
		}
		return "Error del servidor. Intente más tarde"
	}
	if serverMsg != "" {
		return serverMsg
	}
	return fmt.Sprintf("Error inesperado (HTTP %d)", status)
}
