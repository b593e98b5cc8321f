// Package view deriva lo que muestra la consola a partir de las caches:
// paginación, búsqueda, resolución de IDs a nombres y el resumen del tablero.
package view

import "sync"

// DefaultPageSize filas por página.
const DefaultPageSize = 10

// Paginator página actual sobre una lista que cambia. Vuelve a la página 1 cada vez
// que cambia la longitud observada, aunque el cambio sea una edición que no altera el orden.
type Paginator struct {
	mu      sync.Mutex
	size    int
	page    int
	lastLen int
}

// NewPaginator size <= 0 usa DefaultPageSize.
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Paginator{size: size, page: 1, lastLen: -1}
}

// Observe registra la longitud actual de la lista.
func (p *Paginator) Observe(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observe(n)
}

func (p *Paginator) observe(n int) {
	if n != p.lastLen {
		p.lastLen = n
		p.page = 1
	}
}

// Page página actual (1-based).
func (p *Paginator) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// Size filas por página.
func (p *Paginator) Size() int { return p.size }

// TotalPages ceil(n/size) de la última longitud observada.
func (p *Paginator) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPages()
}

func (p *Paginator) totalPages() int {
	if p.lastLen <= 0 {
		return 0
	}
	return (p.lastLen + p.size - 1) / p.size
}

// Go salta a la página n; fuera de rango no hace nada y devuelve false.
func (p *Paginator) Go(n int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n < 1 || n > p.totalPages() {
		return false
	}
	p.page = n
	return true
}

// Next avanza una página si existe.
func (p *Paginator) Next() bool { return p.Go(p.Page() + 1) }

// Prev retrocede una página si existe.
func (p *Paginator) Prev() bool { return p.Go(p.Page() - 1) }

// First vuelve a la primera página.
func (p *Paginator) First() bool { return p.Go(1) }

// Last salta a la última página.
func (p *Paginator) Last() bool { return p.Go(p.TotalPages()) }

// HasNext hay una página siguiente.
func (p *Paginator) HasNext() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page < p.totalPages()
}

// HasPrev hay una página anterior.
func (p *Paginator) HasPrev() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page > 1
}

// bounds [start, end) de la página actual para una lista de longitud n.
func (p *Paginator) bounds(n int) (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observe(n)
	start := p.size * (p.page - 1)
	if start > n {
		start = n
	}
	end := start + p.size
	if end > n {
		end = n
	}
	return start, end
}

// Window porción visible de list; observa su longitud antes de cortar.
func Window[T any](p *Paginator, list []T) []T {
	start, end := p.bounds(len(list))
	return list[start:end]
}
