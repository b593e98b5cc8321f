package inventory

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// MovementDraft estado del formulario de movimiento mientras el usuario lo completa:
// el artículo seleccionado y el almacén que se enviará en el ajuste.
type MovementDraft struct {
	finder   ItemFinder
	notifier notify.Publisher

	mu          sync.Mutex
	item        *entity.Item
	warehouseID int64
}

// NewMovementDraft borrador vacío.
func NewMovementDraft(finder ItemFinder, notifier notify.Publisher) *MovementDraft {
	return &MovementDraft{finder: finder, notifier: notifier}
}

// LookupBarcode busca el texto escrito como código de barras (acción explícita del usuario).
// Con coincidencia selecciona el artículo y toma su almacén; sin ella notifica y deja
// la selección como estaba.
func (d *MovementDraft) LookupBarcode(ctx context.Context, text string) (*entity.Item, error) {
	code := strings.TrimSpace(text)
	if code == "" {
		return nil, domain.NewValidationError("barcode", "es requerido")
	}
	item, err := d.finder.GetByBarcode(ctx, code)
	if err != nil {
		if !domain.AlreadyNotified(err) {
			d.publish("No se encontró un artículo con el código "+code, notify.Error)
		}
		return nil, err
	}
	if item == nil || item.ID == 0 {
		d.publish("No se encontró un artículo con el código "+code, notify.Error)
		return nil, domain.ErrNotFound
	}

	d.mu.Lock()
	selected := *item
	d.item = &selected
	d.warehouseID = item.WarehouseID
	d.mu.Unlock()

	d.publish("Artículo encontrado: "+item.Name, notify.Success)
	return &selected, nil
}

// Select fija el artículo a mano (lista desplegable).
func (d *MovementDraft) Select(item entity.Item) {
	d.mu.Lock()
	d.item = &item
	d.warehouseID = item.WarehouseID
	d.mu.Unlock()
}

// Selected artículo elegido o nil.
func (d *MovementDraft) Selected() *entity.Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.item == nil {
		return nil
	}
	cp := *d.item
	return &cp
}

// WarehouseID almacén capturado del artículo seleccionado.
func (d *MovementDraft) WarehouseID() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.warehouseID
}

// Clear vacía el borrador.
func (d *MovementDraft) Clear() {
	d.mu.Lock()
	d.item = nil
	d.warehouseID = 0
	d.mu.Unlock()
}

func (d *MovementDraft) publish(msg string, sev notify.Severity) {
	if d.notifier != nil {
		d.notifier.Notify(msg, sev)
	}
}
