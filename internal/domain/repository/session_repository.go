package repository

import (
	"context"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Claves persistidas de la sesión.
const (
	KeyToken    = "token"
	KeyUserName = "userName"
	KeyUserID   = "userId"
	// KeyConsoleID credencial que recibe el navegador dueño de la sesión.
	KeyConsoleID = "consoleSession"
)

// SessionStorage almacenamiento persistente clave/valor de la sesión
// (equivalente al localStorage del navegador).
type SessionStorage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(keys ...string) error
}

// AuthRepository puerto hacia POST /Users/login.
type AuthRepository interface {
	Login(ctx context.Context, cred entity.Credentials) (token, userName string, err error)
}
