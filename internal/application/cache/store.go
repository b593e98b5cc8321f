// Package cache mantiene en memoria el espejo de una colección del servidor.
// Las mutaciones se aplican localmente solo después de que la API las confirma.
package cache

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// Entity registro identificado por un ID entero asignado por el servidor.
type Entity interface {
	EntityID() int64
}

// Backend puerto CRUD que respalda un Store (los adaptadores de restapi lo cumplen).
type Backend[T Entity, In any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id int64, in In) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Messages textos de notificación propios de cada colección.
type Messages struct {
	FetchFailed  string
	GetFailed    string
	Created      string
	CreateFailed string
	Updated      string
	UpdateFailed string
	Deleted      string
	DeleteFailed string
}

// Store cache de una colección. Seguro para uso concurrente.
type Store[T Entity, In any] struct {
	backend  Backend[T, In]
	notifier notify.Publisher
	msgs     Messages
	log      *logger.Logger

	mu      sync.RWMutex
	list    []T
	loading bool
	loaded  bool
	lastErr error

	flight singleflight.Group
}

// New construye un Store vacío. notifier y log pueden ser nil.
func New[T Entity, In any](backend Backend[T, In], notifier notify.Publisher, msgs Messages, log *logger.Logger) *Store[T, In] {
	if log == nil {
		log = logger.Nop()
	}
	return &Store[T, In]{backend: backend, notifier: notifier, msgs: msgs, log: log}
}

// FetchAll reemplaza la lista completa con la del servidor. Si falla, la lista anterior
// queda intacta y el error se registra en LastError. Llamadas concurrentes comparten
// una sola petición.
func (s *Store[T, In]) FetchAll(ctx context.Context) error {
	// loading solo lo toca la función del vuelo: quien se une a un vuelo ya
	// terminado no puede dejarlo en true.
	_, err, _ := s.flight.Do("all", func() (interface{}, error) {
		s.mu.Lock()
		s.loading = true
		s.lastErr = nil
		s.mu.Unlock()

		list, err := s.backend.List(ctx)
		s.mu.Lock()
		s.loading = false
		if err != nil {
			s.lastErr = err
		} else {
			s.list = list
			s.loaded = true
		}
		s.mu.Unlock()
		if err != nil {
			s.log.Warn().Err(err).Msg("fetchAll")
			s.fail(err, s.msgs.FetchFailed)
		}
		return nil, err
	})
	return err
}

// Create registra la entidad en el servidor y la antepone a la lista con la forma confirmada.
// Creaciones solapadas quedan en el orden en que responde el servidor.
func (s *Store[T, In]) Create(ctx context.Context, in In) (*T, error) {
	created, err := s.backend.Create(ctx, in)
	if err != nil {
		s.fail(err, s.msgs.CreateFailed)
		return nil, err
	}
	s.mu.Lock()
	s.list = append([]T{*created}, s.list...)
	s.mu.Unlock()
	s.succeed(s.msgs.Created)
	return created, nil
}

// Update reemplaza la entrada con ese ID por la respuesta del servidor.
func (s *Store[T, In]) Update(ctx context.Context, id int64, in In) (*T, error) {
	updated, err := s.backend.Update(ctx, id, in)
	if err != nil {
		s.fail(err, s.msgs.UpdateFailed)
		return nil, err
	}
	s.mu.Lock()
	for i := range s.list {
		if s.list[i].EntityID() == id {
			s.list[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	s.succeed(s.msgs.Updated)
	return updated, nil
}

// Delete elimina en el servidor y luego quita la entrada local.
func (s *Store[T, In]) Delete(ctx context.Context, id int64) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		s.fail(err, s.msgs.DeleteFailed)
		return err
	}
	s.mu.Lock()
	out := s.list[:0:0]
	for _, e := range s.list {
		if e.EntityID() != id {
			out = append(out, e)
		}
	}
	s.list = out
	s.mu.Unlock()
	s.succeed(s.msgs.Deleted)
	return nil
}

// GetByID devuelve la entrada en cache o la pide una vez al servidor, sin recargar la lista.
// Búsquedas concurrentes del mismo ID comparten la petición.
func (s *Store[T, In]) GetByID(ctx context.Context, id int64) (*T, error) {
	s.mu.RLock()
	for _, e := range s.list {
		if e.EntityID() == id {
			found := e
			s.mu.RUnlock()
			return &found, nil
		}
	}
	s.mu.RUnlock()

	v, err, _ := s.flight.Do("id:"+strconv.FormatInt(id, 10), func() (interface{}, error) {
		found, err := s.backend.GetByID(ctx, id)
		if err != nil {
			s.fail(err, s.msgs.GetFailed)
			return nil, err
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}
	found := *v.(*T)
	return &found, nil
}

// List copia de la lista actual.
func (s *Store[T, In]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.list))
	copy(out, s.list)
	return out
}

// Loading indica si hay un FetchAll en curso.
func (s *Store[T, In]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Loaded indica si al menos un FetchAll terminó bien.
func (s *Store[T, In]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// LastError error del último FetchAll (nil si fue exitoso).
func (s *Store[T, In]) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Reset vacía la cache (fin de sesión).
func (s *Store[T, In]) Reset() {
	s.mu.Lock()
	s.list = nil
	s.loaded = false
	s.loading = false
	s.lastErr = nil
	s.mu.Unlock()
}

// Notify publica un mensaje por el canal del store (lo usan los stores especializados).
func (s *Store[T, In]) Notify(msg string, sev notify.Severity) {
	if s.notifier != nil && msg != "" {
		s.notifier.Notify(msg, sev)
	}
}

func (s *Store[T, In]) succeed(msg string) {
	s.Notify(msg, notify.Success)
}

// fail notifica salvo que el cliente HTTP ya lo haya hecho.
func (s *Store[T, In]) fail(err error, msg string) {
	if domain.AlreadyNotified(err) {
		return
	}
	s.Notify(msg, notify.Error)
}
