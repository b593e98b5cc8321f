package dto

// PageRequest página solicitada (1-based). Cero o negativo equivale a la primera.
type PageRequest struct {
	Page int `query:"page"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Fields   map[string]string `json:"fields,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

// MessageResponse confirmación sin entidad (ajuste de inventario, logout).
type MessageResponse struct {
	Message string `json:"message"`
}
