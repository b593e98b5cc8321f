package entity

// Credentials credenciales de login.
type Credentials struct {
	UserName string
	Password string
}

// Session identidad del usuario autenticado.
type Session struct {
	ID          string // credencial de la consola (cookie), distinta del token de la API
	Token       string
	DisplayName string
	UserID      *int64 // nil si no se pudo derivar del token
}

// BarcodeValidation respuesta del servidor al validar un código escaneado.
type BarcodeValidation struct {
	Valid    bool
	ItemID   *int64
	ItemName string
	Message  string
}
