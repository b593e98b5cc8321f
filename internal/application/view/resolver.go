package view

import (
	"fmt"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Resolver traduce IDs a nombres para mostrar. Un ID sin entrada conocida
// produce una etiqueta de respaldo en lugar de fallar.
type Resolver struct {
	items      map[int64]string
	groups     map[int64]string
	warehouses map[int64]string
	vats       map[int64]entity.VatRate
}

// NewResolver indexa las listas recibidas; cualquiera puede ser nil.
func NewResolver(items []entity.Item, groups []entity.ItemGroup, warehouses []entity.Warehouse, vats []entity.VatRate) *Resolver {
	r := &Resolver{
		items:      make(map[int64]string, len(items)),
		groups:     make(map[int64]string, len(groups)),
		warehouses: make(map[int64]string, len(warehouses)),
		vats:       make(map[int64]entity.VatRate, len(vats)),
	}
	for _, it := range items {
		r.items[it.ID] = it.Name
	}
	for _, g := range groups {
		r.groups[g.ID] = g.Name
	}
	for _, w := range warehouses {
		r.warehouses[w.ID] = w.Name
	}
	for _, v := range vats {
		r.vats[v.ID] = v
	}
	return r
}

func (r *Resolver) ItemName(id int64) string {
	if n, ok := r.items[id]; ok {
		return n
	}
	return fmt.Sprintf("ID: %d", id)
}

func (r *Resolver) GroupName(id int64) string {
	if n, ok := r.groups[id]; ok {
		return n
	}
	return fmt.Sprintf("Grupo %d", id)
}

func (r *Resolver) WarehouseName(id int64) string {
	if n, ok := r.warehouses[id]; ok {
		return n
	}
	return fmt.Sprintf("Almacén %d", id)
}

// VatLabel "descripción (tasa%)".
func (r *Resolver) VatLabel(id int64) string {
	if v, ok := r.vats[id]; ok {
		return fmt.Sprintf("%s (%s%%)", v.Description, v.Rate.String())
	}
	return fmt.Sprintf("ITBIS %d", id)
}
