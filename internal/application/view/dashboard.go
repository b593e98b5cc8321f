package view

import "github.com/jhoicas/inventario-console/internal/domain/entity"

// RecentLimit movimientos recientes que muestra el tablero.
const RecentLimit = 5

// Summary conteos por tipo de movimiento.
type Summary struct {
	Entradas int
	Salidas  int
	Ajustes  int
	Total    int
	Recent   []entity.Movement
}

// Summarize cuenta los movimientos por tipo; los recientes son los primeros de la lista
// (la cache antepone las altas).
func Summarize(movements []entity.Movement) Summary {
	s := Summary{Total: len(movements)}
	for _, m := range movements {
		switch m.Kind {
		case entity.MovementEntrada:
			s.Entradas++
		case entity.MovementSalida:
			s.Salidas++
		case entity.MovementAjuste:
			s.Ajustes++
		}
	}
	n := len(movements)
	if n > RecentLimit {
		n = RecentLimit
	}
	s.Recent = append([]entity.Movement(nil), movements[:n]...)
	return s
}
