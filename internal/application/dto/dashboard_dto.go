package dto

// DashboardSummaryDTO respuesta de GET /console/dashboard.
// Conteos por tipo sobre los movimientos cargados y los más recientes.
type DashboardSummaryDTO struct {
	Entradas int `json:"entradas"`
	Salidas  int `json:"salidas"`
	Ajustes  int `json:"ajustes"`
	Total    int `json:"total"`

	// Los últimos registrados primero (máximo 5).
	Recent []MovementResponse `json:"recent"`

	ItemsLoaded int `json:"items_loaded"`
}
