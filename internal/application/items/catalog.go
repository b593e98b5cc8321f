package items

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/application/view"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/internal/domain/repository"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// Catalogs listas de referencia de solo lectura, salvo el alta al vuelo de grupos.
type Catalogs struct {
	groupRepo     repository.ItemGroupRepository
	vatRepo       repository.VatRepository
	warehouseRepo repository.WarehouseRepository
	notifier      notify.Publisher
	log           *logger.Logger

	mu         sync.RWMutex
	groups     []entity.ItemGroup
	vats       []entity.VatRate
	warehouses []entity.Warehouse
	loaded     bool
}

// NewCatalogs construye los catálogos vacíos.
func NewCatalogs(groups repository.ItemGroupRepository, vats repository.VatRepository, warehouses repository.WarehouseRepository, notifier notify.Publisher, log *logger.Logger) *Catalogs {
	if log == nil {
		log = logger.Nop()
	}
	return &Catalogs{groupRepo: groups, vatRepo: vats, warehouseRepo: warehouses, notifier: notifier, log: log}
}

// Load pide grupos e ITBIS en paralelo y después los almacenes. Un catálogo que falla
// conserva su contenido anterior.
func (c *Catalogs) Load(ctx context.Context) error {
	var (
		groups []entity.ItemGroup
		vats   []entity.VatRate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		groups, err = c.groupRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		vats, err = c.vatRepo.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		c.log.Warn().Err(err).Msg("catálogos de grupos/ITBIS")
		c.fail(err, "Error al cargar grupos e impuestos")
		return err
	}
	c.mu.Lock()
	c.groups, c.vats = groups, vats
	c.mu.Unlock()

	if err := c.LoadWarehouses(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Loaded indica si ya hubo una carga completa desde el último Reset.
func (c *Catalogs) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// LoadWarehouses recarga solo el catálogo de almacenes.
func (c *Catalogs) LoadWarehouses(ctx context.Context) error {
	warehouses, err := c.warehouseRepo.List(ctx)
	if err != nil {
		c.fail(err, "Error al cargar almacenes")
		return err
	}
	c.mu.Lock()
	c.warehouses = warehouses
	c.mu.Unlock()
	return nil
}

// Groups copia del catálogo de grupos.
func (c *Catalogs) Groups() []entity.ItemGroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.ItemGroup(nil), c.groups...)
}

// Vats copia del catálogo de ITBIS.
func (c *Catalogs) Vats() []entity.VatRate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.VatRate(nil), c.vats...)
}

// Warehouses copia del catálogo de almacenes.
func (c *Catalogs) Warehouses() []entity.Warehouse {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.Warehouse(nil), c.warehouses...)
}

// FindGroupByName ignora espacios en los extremos, mayúsculas y tildes: "Ferretería ",
// "ferreteria" y "FERRETERÍA" son el mismo grupo; la puntuación cuenta ("C" y "C++" no).
func (c *Catalogs) FindGroupByName(name string) (entity.ItemGroup, bool) {
	key := groupKey(name)
	if key == "" {
		return entity.ItemGroup{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, g := range c.groups {
		if groupKey(g.Name) == key {
			return g, true
		}
	}
	return entity.ItemGroup{}, false
}

func groupKey(name string) string {
	return view.Fold(strings.TrimSpace(name))
}

// EnsureGroup devuelve el ID del grupo con ese nombre, creándolo en la API si no existe.
func (c *Catalogs) EnsureGroup(ctx context.Context, name string) (int64, error) {
	if g, ok := c.FindGroupByName(name); ok {
		return g.ID, nil
	}
	created, err := c.groupRepo.Create(ctx, name)
	if err != nil {
		c.fail(err, "Error al crear el grupo "+strings.TrimSpace(name))
		return 0, err
	}
	c.mu.Lock()
	c.groups = append(c.groups, *created)
	c.mu.Unlock()
	c.publish("Grupo "+created.Name+" creado", notify.Success)
	return created.ID, nil
}

// Reset vacía los catálogos (fin de sesión).
func (c *Catalogs) Reset() {
	c.mu.Lock()
	c.groups, c.vats, c.warehouses = nil, nil, nil
	c.loaded = false
	c.mu.Unlock()
}

func (c *Catalogs) fail(err error, msg string) {
	if !domain.AlreadyNotified(err) {
		c.publish(msg, notify.Error)
	}
}

func (c *Catalogs) publish(msg string, sev notify.Severity) {
	if c.notifier != nil {
		c.notifier.Notify(msg, sev)
	}
}
