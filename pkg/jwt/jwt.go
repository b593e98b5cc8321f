// Package jwt decodifica los tokens emitidos por la API de inventario.
// La consola no conoce el secreto de firma: solo lee los claims (exp, id de usuario)
// para decidir si la sesión sigue vigente y para atribuir escrituras.
package jwt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Variantes conocidas del claim de id de usuario, en orden de preferencia.
// ASP.NET usa la URI completa; los demás son formas cortas.
var userIDClaims = []string{
	"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier",
	"nameid",
	"sub",
	"uid",
}

// Decode lee los claims sin verificar la firma. Falla si el token no tiene forma JWT.
func Decode(token string) (jwt.MapClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("jwt: token vacío")
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("jwt: decodificar: %w", err)
	}
	return claims, nil
}

// ExpiresAt devuelve el claim exp del token.
func ExpiresAt(token string) (time.Time, error) {
	claims, err := Decode(token)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("jwt: exp inválido: %w", err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("jwt: sin claim exp")
	}
	return exp.Time, nil
}

// Valid indica si el token decodifica y su exp es posterior a now.
// Cualquier fallo de decodificación se trata como no autenticado.
func Valid(token string, now time.Time) bool {
	exp, err := ExpiresAt(token)
	if err != nil {
		return false
	}
	return now.Before(exp)
}

// UserID extrae el id numérico del usuario probando las variantes de claim conocidas.
func UserID(token string) (int64, bool) {
	claims, err := Decode(token)
	if err != nil {
		return 0, false
	}
	for _, name := range userIDClaims {
		raw, ok := claims[name]
		if !ok || raw == nil {
			continue
		}
		if id, ok := toInt64(raw); ok {
			return id, true
		}
	}
	return 0, false
}

// Name devuelve unique_name (o name) si está presente.
func Name(token string) string {
	claims, err := Decode(token)
	if err != nil {
		return ""
	}
	for _, k := range []string{"unique_name", "name"} {
		if s, ok := claims[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func toInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case float64:
		return int64(x), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	case int64:
		return x, true
	case int:
		return int64(x), true
	}
	return 0, false
}
