package dto

import "time"

// LoginRequest credenciales para POST /console/login.
type LoginRequest struct {
	UserName string `json:"userName" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse estado de la sesión actual.
type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	SessionID     string     `json:"session_id,omitempty"` // solo en la respuesta del login
	UserName      string     `json:"user_name,omitempty"`
	UserID        *int64     `json:"user_id,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}
