// Package workspace reúne el estado de una sesión de la consola: caches de movimientos
// y artículos, catálogos, borrador del formulario de movimiento y paginadores.
// Se crea al primer uso tras el login y se descarta al cerrar la sesión.
package workspace

import (
	"sync"

	"github.com/jhoicas/inventario-console/internal/application/inventory"
	"github.com/jhoicas/inventario-console/internal/application/items"
	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/application/view"
	"github.com/jhoicas/inventario-console/internal/domain/repository"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// Repositories puertos hacia la API que usa una sesión.
type Repositories struct {
	Items      repository.ItemRepository
	Movements  repository.InventoryMovementRepository
	Groups     repository.ItemGroupRepository
	Vats       repository.VatRepository
	Warehouses repository.WarehouseRepository
}

// Workspace estado de una sesión.
type Workspace struct {
	Movements     *inventory.MovementStore
	Items         *items.ItemStore
	Catalogs      *items.Catalogs
	Form          *items.FormUseCase
	Draft         *inventory.MovementDraft
	MovementPages *view.Paginator
	ItemPages     *view.Paginator
}

// Resolver índice de nombres con el contenido actual de las caches.
func (w *Workspace) Resolver() *view.Resolver {
	return view.NewResolver(w.Items.List(), w.Catalogs.Groups(), w.Catalogs.Warehouses(), w.Catalogs.Vats())
}

// Dashboard conteos por tipo sobre los movimientos cargados.
func (w *Workspace) Dashboard() view.Summary {
	return view.Summarize(w.Movements.List())
}

func (w *Workspace) reset() {
	w.Movements.Reset()
	w.Items.Reset()
	w.Catalogs.Reset()
	w.Draft.Clear()
}

// Provider entrega el Workspace de la sesión vigente, identificada por la credencial
// de la consola. Solo existe uno a la vez: una credencial distinta descarta el anterior.
type Provider struct {
	repos    Repositories
	notifier notify.Publisher
	pageSize int
	log      *logger.Logger

	mu      sync.Mutex
	key     string
	current *Workspace
}

// NewProvider pageSize <= 0 usa view.DefaultPageSize.
func NewProvider(repos Repositories, notifier notify.Publisher, pageSize int, log *logger.Logger) *Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &Provider{repos: repos, notifier: notifier, pageSize: pageSize, log: log}
}

// Current devuelve el Workspace de la sesión key, creándolo si no existe o si
// pertenecía a otra sesión.
func (p *Provider) Current(key string) *Workspace {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil && p.key == key {
		return p.current
	}
	if p.current != nil {
		p.current.reset()
		p.log.Debug().Msg("workspace de otra sesión descartado")
	}
	p.key = key
	p.current = p.build()
	p.log.Debug().Msg("workspace de sesión creado")
	return p.current
}

// Reset descarta el Workspace vigente; el siguiente Current parte de caches vacías.
func (p *Provider) Reset() {
	p.mu.Lock()
	old := p.current
	p.current = nil
	p.key = ""
	p.mu.Unlock()
	if old != nil {
		old.reset()
		p.log.Debug().Msg("workspace de sesión descartado")
	}
}

func (p *Provider) build() *Workspace {
	itemStore := items.NewItemStore(p.repos.Items, p.notifier, p.log.Named("items"))
	catalogs := items.NewCatalogs(p.repos.Groups, p.repos.Vats, p.repos.Warehouses, p.notifier, p.log.Named("catalogs"))
	return &Workspace{
		Movements:     inventory.NewMovementStore(p.repos.Movements, p.notifier, p.log.Named("movements")),
		Items:         itemStore,
		Catalogs:      catalogs,
		Form:          items.NewFormUseCase(itemStore, catalogs),
		Draft:         inventory.NewMovementDraft(p.repos.Items, p.notifier),
		MovementPages: view.NewPaginator(p.pageSize),
		ItemPages:     view.NewPaginator(p.pageSize),
	}
}
