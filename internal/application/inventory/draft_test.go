package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/inventory"
	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

type fakeFinder struct {
	items map[string]entity.Item
	calls int
}

func (f *fakeFinder) GetByBarcode(_ context.Context, code string) (*entity.Item, error) {
	f.calls++
	if it, ok := f.items[code]; ok {
		return &it, nil
	}
	return nil, &domain.APIError{Kind: domain.KindNotFound, Status: 404}
}

func TestLookupBarcode_SeleccionaYCapturaAlmacen(t *testing.T) {
	finder := &fakeFinder{items: map[string]entity.Item{"750100": {ID: 3, Name: "Arroz", WarehouseID: 8}}}
	n := notify.New(notify.WithDefaultDuration(0))
	d := inventory.NewMovementDraft(finder, n)

	item, err := d.LookupBarcode(context.Background(), " 750100 ")
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.ID)
	assert.Equal(t, int64(8), d.WarehouseID())
	require.NotNil(t, d.Selected())
	assert.Equal(t, "Arroz", d.Selected().Name)
}

func TestLookupBarcode_SinCoincidenciaConservaSeleccion(t *testing.T) {
	finder := &fakeFinder{items: map[string]entity.Item{}}
	n := notify.New(notify.WithDefaultDuration(0))
	d := inventory.NewMovementDraft(finder, n)
	d.Select(entity.Item{ID: 1, Name: "Previo", WarehouseID: 2})

	_, err := d.LookupBarcode(context.Background(), "000")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(1), d.Selected().ID)
	assert.Equal(t, int64(2), d.WarehouseID())

	active := n.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notify.Error, active[0].Severity)
	assert.Contains(t, active[0].Message, "000")
}

func TestLookupBarcode_TextoVacioNoLlamaALaAPI(t *testing.T) {
	finder := &fakeFinder{}
	d := inventory.NewMovementDraft(finder, nil)

	_, err := d.LookupBarcode(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, finder.calls)
}
