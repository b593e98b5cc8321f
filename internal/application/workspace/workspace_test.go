package workspace_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/application/workspace"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

type itemRepo struct{}

func (itemRepo) List(context.Context) ([]entity.Item, error) {
	return []entity.Item{{ID: 1, Name: "Tornillo", GroupID: 2, WarehouseID: 3}}, nil
}
func (itemRepo) GetByID(context.Context, int64) (*entity.Item, error) { return nil, domain.ErrNotFound }
func (itemRepo) GetByBarcode(context.Context, string) (*entity.Item, error) {
	return nil, domain.ErrNotFound
}
func (itemRepo) Create(context.Context, entity.ItemInput) (*entity.Item, error) {
	return nil, domain.ErrServer
}
func (itemRepo) Update(context.Context, int64, entity.ItemInput) (*entity.Item, error) {
	return nil, domain.ErrServer
}
func (itemRepo) Delete(context.Context, int64) error { return nil }

type movementRepo struct{}

func (movementRepo) List(context.Context) ([]entity.Movement, error) {
	return []entity.Movement{
		{ID: 1, ItemID: 1, Kind: entity.MovementEntrada, Quantity: decimal.NewFromInt(4)},
		{ID: 2, ItemID: 1, Kind: entity.MovementSalida, Quantity: decimal.NewFromInt(1)},
	}, nil
}
func (movementRepo) GetByID(context.Context, int64) (*entity.Movement, error) {
	return nil, domain.ErrNotFound
}
func (movementRepo) Create(context.Context, entity.MovementInput) (*entity.Movement, error) {
	return nil, domain.ErrServer
}
func (movementRepo) Update(context.Context, int64, entity.MovementInput) (*entity.Movement, error) {
	return nil, domain.ErrServer
}
func (movementRepo) Delete(context.Context, int64) error { return nil }
func (movementRepo) Adjust(context.Context, entity.AdjustmentInput) (string, error) {
	return "", nil
}

type groupRepo struct{}

func (groupRepo) List(context.Context) ([]entity.ItemGroup, error) {
	return []entity.ItemGroup{{ID: 2, Name: "Ferretería"}}, nil
}
func (groupRepo) Create(_ context.Context, name string) (*entity.ItemGroup, error) {
	return &entity.ItemGroup{ID: 9, Name: name}, nil
}

type vatRepo struct{}

func (vatRepo) List(context.Context) ([]entity.VatRate, error) { return nil, nil }

type warehouseRepo struct{}

func (warehouseRepo) List(context.Context) ([]entity.Warehouse, error) {
	return []entity.Warehouse{{ID: 3, Name: "Principal"}}, nil
}

func newProvider() *workspace.Provider {
	repos := workspace.Repositories{
		Items: itemRepo{}, Movements: movementRepo{}, Groups: groupRepo{}, Vats: vatRepo{}, Warehouses: warehouseRepo{},
	}
	return workspace.NewProvider(repos, notify.New(notify.WithDefaultDuration(0)), 5, nil)
}

func TestProvider_MismoWorkspaceDuranteLaSesion(t *testing.T) {
	p := newProvider()
	assert.Same(t, p.Current("s1"), p.Current("s1"))
	assert.Equal(t, 5, p.Current("s1").MovementPages.Size())
}

func TestProvider_ResetDescartaCaches(t *testing.T) {
	p := newProvider()
	ctx := context.Background()
	old := p.Current("s1")
	require.NoError(t, old.Movements.FetchAll(ctx))
	require.NoError(t, old.Catalogs.Load(ctx))
	require.Len(t, old.Movements.List(), 2)

	p.Reset()

	assert.Empty(t, old.Movements.List())
	assert.Empty(t, old.Catalogs.Groups())
	fresh := p.Current("s1")
	assert.NotSame(t, old, fresh)
	assert.Empty(t, fresh.Movements.List())
	assert.False(t, fresh.Movements.Loaded())
}

func TestProvider_OtraSesionParteDeCero(t *testing.T) {
	p := newProvider()
	ctx := context.Background()
	first := p.Current("s1")
	require.NoError(t, first.Movements.FetchAll(ctx))

	second := p.Current("s2")
	assert.NotSame(t, first, second)
	assert.Empty(t, first.Movements.List())
	assert.False(t, second.Movements.Loaded())
	assert.Same(t, second, p.Current("s2"))
}

func TestWorkspace_ResolverYTablero(t *testing.T) {
	p := newProvider()
	ctx := context.Background()
	ws := p.Current("s1")
	require.NoError(t, ws.Items.FetchAll(ctx))
	require.NoError(t, ws.Movements.FetchAll(ctx))
	require.NoError(t, ws.Catalogs.Load(ctx))

	r := ws.Resolver()
	assert.Equal(t, "Tornillo", r.ItemName(1))
	assert.Equal(t, "Ferretería", r.GroupName(2))
	assert.Equal(t, "Principal", r.WarehouseName(3))
	assert.Equal(t, "ID: 7", r.ItemName(7))

	s := ws.Dashboard()
	assert.Equal(t, 1, s.Entradas)
	assert.Equal(t, 1, s.Salidas)
	assert.Equal(t, 2, s.Total)
}
