package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrBadRequest     = errors.New("solicitud inválida")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrServer         = errors.New("error del servidor")
	ErrUnknown        = errors.New("error desconocido")
	ErrNetwork        = errors.New("sin respuesta del servidor")
	ErrNoSession      = errors.New("no hay sesión activa")
	ErrMalformedToken = errors.New("token malformado")
)

// ErrorKind clasifica un fallo de la API REST.
type ErrorKind string

const (
	KindNetwork      ErrorKind = "NETWORK"
	KindBadRequest   ErrorKind = "BAD_REQUEST"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindServer       ErrorKind = "SERVER_ERROR"
	KindUnknown      ErrorKind = "UNKNOWN"
)

// ClassifyStatus traduce un código HTTP de error a su categoría.
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status == 400 || status == 409 || status == 422:
		return KindBadRequest
	case status == 401:
		return KindUnauthorized
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status >= 500 && status <= 599:
		return KindServer
	default:
		return KindUnknown
	}
}

// APIError error devuelto por el cliente REST. Status es 0 cuando no hubo respuesta.
type APIError struct {
	Kind     ErrorKind
	Status   int
	Message  string
	Err      error
	Notified bool // el cliente HTTP ya publicó el aviso al usuario
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// AlreadyNotified indica si el error ya fue publicado en el canal de notificaciones.
func AlreadyNotified(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Notified
}

// Is permite errors.Is(err, domain.ErrNotFound) sobre un *APIError.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrBadRequest, ErrInvalidInput:
		return e.Kind == KindBadRequest
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrForbidden:
		return e.Kind == KindForbidden
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrServer:
		return e.Kind == KindServer
	case ErrUnknown:
		return e.Kind == KindUnknown
	}
	return false
}

// ValidationError errores de formulario por campo, detectados antes de llamar a la API.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un ValidationError con un único campo.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add agrega (o reemplaza) el mensaje de un campo.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

// Empty indica si no hay errores registrados.
func (e *ValidationError) Empty() bool { return e == nil || len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }
