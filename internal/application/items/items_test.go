package items_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/items"
	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// calls registra el orden de las llamadas a la API entre repositorios.
type calls []string

type fakeItemRepo struct {
	log     *calls
	created []entity.ItemInput
}

func (f *fakeItemRepo) List(context.Context) ([]entity.Item, error) { return nil, nil }
func (f *fakeItemRepo) GetByID(context.Context, int64) (*entity.Item, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeItemRepo) GetByBarcode(context.Context, string) (*entity.Item, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeItemRepo) Create(_ context.Context, in entity.ItemInput) (*entity.Item, error) {
	*f.log = append(*f.log, "item.create")
	f.created = append(f.created, in)
	return &entity.Item{ID: 50, Name: in.Name, GroupID: in.GroupID, Cost: in.Cost, Prices: in.Prices, Barcodes: in.Barcodes}, nil
}
func (f *fakeItemRepo) Update(_ context.Context, id int64, in entity.ItemInput) (*entity.Item, error) {
	*f.log = append(*f.log, "item.update")
	return &entity.Item{ID: id, Name: in.Name, GroupID: in.GroupID}, nil
}
func (f *fakeItemRepo) Delete(context.Context, int64) error { return nil }

type fakeGroupRepo struct {
	log    *calls
	groups []entity.ItemGroup
	err    error
}

func (f *fakeGroupRepo) List(context.Context) ([]entity.ItemGroup, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.groups, nil
}
func (f *fakeGroupRepo) Create(_ context.Context, name string) (*entity.ItemGroup, error) {
	*f.log = append(*f.log, "group.create")
	g := entity.ItemGroup{ID: int64(len(f.groups) + 10), Name: name}
	f.groups = append(f.groups, g)
	return &g, nil
}

type fakeVatRepo struct{ err error }

func (f fakeVatRepo) List(context.Context) ([]entity.VatRate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []entity.VatRate{{ID: 1, Description: "ITBIS 18%", Rate: decimal.NewFromInt(18)}}, nil
}

type fakeWarehouseRepo struct{}

func (fakeWarehouseRepo) List(context.Context) ([]entity.Warehouse, error) {
	return []entity.Warehouse{{ID: 1, Name: "Principal"}}, nil
}

type fixture struct {
	log      *calls
	items    *fakeItemRepo
	groups   *fakeGroupRepo
	catalogs *items.Catalogs
	form     *items.FormUseCase
	notifier *notify.Notifier
}

func newFixture(t *testing.T, existing ...entity.ItemGroup) fixture {
	t.Helper()
	log := &calls{}
	n := notify.New(notify.WithDefaultDuration(0))
	itemRepo := &fakeItemRepo{log: log}
	groupRepo := &fakeGroupRepo{log: log, groups: existing}
	cat := items.NewCatalogs(groupRepo, fakeVatRepo{}, fakeWarehouseRepo{}, n, nil)
	require.NoError(t, cat.Load(context.Background()))
	store := items.NewItemStore(itemRepo, n, nil)
	return fixture{log: log, items: itemRepo, groups: groupRepo, catalogs: cat, form: items.NewFormUseCase(store, cat), notifier: n}
}

func TestCreate_GrupoNuevoSeCreaUnaVezAntesDelArticulo(t *testing.T) {
	f := newFixture(t, entity.ItemGroup{ID: 1, Name: "Ferretería"})

	item, err := f.form.Create(context.Background(), dto.ItemRequest{ItemName: "Martillo", GroupName: "Herramientas"})
	require.NoError(t, err)
	assert.Equal(t, calls{"group.create", "item.create"}, *f.log)
	assert.Equal(t, int64(11), item.GroupID)

	// El grupo ya existe en el catálogo: no se vuelve a crear.
	_, err = f.form.Create(context.Background(), dto.ItemRequest{ItemName: "Serrucho", GroupName: "herramientas "})
	require.NoError(t, err)
	assert.Equal(t, calls{"group.create", "item.create", "item.create"}, *f.log)
	assert.Equal(t, int64(11), f.items.created[1].GroupID)
}

func TestCreate_GrupoExistenteIgnoraAcentosYMayusculas(t *testing.T) {
	f := newFixture(t, entity.ItemGroup{ID: 1, Name: "Ferretería"})

	_, err := f.form.Create(context.Background(), dto.ItemRequest{ItemName: "Clavo", GroupName: "FERRETERIA"})
	require.NoError(t, err)
	assert.Equal(t, calls{"item.create"}, *f.log)
	assert.Equal(t, int64(1), f.items.created[0].GroupID)
}

func TestCreate_PuntuacionDistingueGrupos(t *testing.T) {
	f := newFixture(t, entity.ItemGroup{ID: 1, Name: "C"}, entity.ItemGroup{ID: 2, Name: "Tubo 1/2"})
	ctx := context.Background()

	_, err := f.form.Create(ctx, dto.ItemRequest{ItemName: "Libro", GroupName: "C++"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), f.items.created[0].GroupID)

	_, err = f.form.Create(ctx, dto.ItemRequest{ItemName: "Codo", GroupName: "Tubo 1-2"})
	require.NoError(t, err)
	assert.Equal(t, int64(13), f.items.created[1].GroupID)

	// Un nombre solo de símbolos se crea una vez y luego se reutiliza.
	for i := 0; i < 2; i++ {
		_, err = f.form.Create(ctx, dto.ItemRequest{ItemName: "Varios", GroupName: "***"})
		require.NoError(t, err)
	}
	assert.Equal(t, int64(14), f.items.created[2].GroupID)
	assert.Equal(t, int64(14), f.items.created[3].GroupID)

	assert.Equal(t, calls{
		"group.create", "item.create",
		"group.create", "item.create",
		"group.create", "item.create", "item.create",
	}, *f.log)
}

func TestCreate_PrecioMenorQueCostoNoLlamaALaAPI(t *testing.T) {
	f := newFixture(t)

	_, err := f.form.Create(context.Background(), dto.ItemRequest{
		ItemName:  "Tornillo",
		GroupName: "Nuevo",
		Cost:      decimal.NewFromInt(10),
		Price:     decimal.NewFromInt(9),
	})
	require.Error(t, err)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "price")
	assert.Empty(t, *f.log)
}

func TestCreate_NombreRequerido(t *testing.T) {
	f := newFixture(t)
	_, err := f.form.Create(context.Background(), dto.ItemRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, *f.log)
}

func TestPrepare_PrecioDesdeMargenYCodigoAutomatico(t *testing.T) {
	f := newFixture(t)
	in, err := f.form.Prepare(dto.ItemRequest{
		ItemName:            "Pintura",
		Cost:                decimal.RequireFromString("12.35"),
		Margin:              decimal.NewFromInt(30),
		AutoCalculatePrice:  true,
		AutoGenerateBarcode: true,
		VatApplicable:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "16.06", in.Prices[0].StringFixed(2))
	assert.Regexp(t, regexp.MustCompile(`^BAR-\d+-[0-9A-Z]{9}$`), in.Barcodes[0])
	assert.True(t, in.VatApplicable)
}

func TestPrepare_CodigoEscritoNoSeReemplaza(t *testing.T) {
	f := newFixture(t)
	in, err := f.form.Prepare(dto.ItemRequest{ItemName: "Pintura", Barcode: "7501", AutoGenerateBarcode: true})
	require.NoError(t, err)
	assert.Equal(t, "7501", in.Barcodes[0])
}

func TestPriceFromMargin(t *testing.T) {
	assert.Equal(t, "150.00", items.PriceFromMargin(decimal.NewFromInt(100), decimal.NewFromInt(50)).StringFixed(2))
	assert.True(t, items.PriceFromMargin(decimal.Zero, decimal.NewFromInt(50)).IsZero())
}

func TestGenerateBarcode(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	code := items.GenerateBarcode(at)
	assert.Regexp(t, `^BAR-1700000000123-[0-9A-F]{9}$`, code)
}

func TestCatalogs_FalloDeGruposNotificaYConserva(t *testing.T) {
	f := newFixture(t, entity.ItemGroup{ID: 1, Name: "A"})
	f.groups.err = errors.New("caído")

	err := f.catalogs.Load(context.Background())
	require.Error(t, err)
	assert.Len(t, f.catalogs.Groups(), 1)
	assert.Len(t, f.catalogs.Vats(), 1)

	active := f.notifier.Active()
	require.NotEmpty(t, active)
	assert.Equal(t, "Error al cargar grupos e impuestos", active[len(active)-1].Message)
}

func TestCatalogs_Carga(t *testing.T) {
	f := newFixture(t, entity.ItemGroup{ID: 1, Name: "A"})
	assert.Len(t, f.catalogs.Groups(), 1)
	assert.Len(t, f.catalogs.Vats(), 1)
	assert.Equal(t, "Principal", f.catalogs.Warehouses()[0].Name)
	assert.True(t, f.catalogs.Loaded())

	f.catalogs.Reset()
	assert.False(t, f.catalogs.Loaded())
	assert.Empty(t, f.catalogs.Groups())
}
