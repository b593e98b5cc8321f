// Package notify es el canal transversal de notificaciones: desacopla al cliente HTTP
// y a las caches de quien esté mostrando el feedback (toasts del navegador, log, CLI).
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity severidad de una notificación.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
	Warning Severity = "warning"
)

// DefaultDuration tiempo de auto-cierre por defecto.
const DefaultDuration = 3 * time.Second

// Notification aviso transitorio.
type Notification struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	Severity  Severity      `json:"type"`
	Duration  time.Duration `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
}

// EventType tipo de evento entregado a los suscriptores.
type EventType string

const (
	Added     EventType = "added"
	Dismissed EventType = "dismissed"
)

// Event cambio en el conjunto de notificaciones activas.
type Event struct {
	Type         EventType
	Notification Notification
}

// Subscriber observador del canal.
type Subscriber interface {
	OnNotification(Event)
}

// SubscriberFunc adapta una función a Subscriber.
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnNotification(e Event) { f(e) }

// Publisher lo que necesitan los productores (cliente HTTP, stores).
type Publisher interface {
	Notify(message string, severity Severity) Notification
}

// Notifier servicio de notificaciones. Conserva el orden de inserción;
// pueden coexistir varias notificaciones visibles.
type Notifier struct {
	mu              sync.Mutex
	active          []Notification
	timers          map[string]*time.Timer
	subs            map[int]Subscriber
	nextSub         int
	defaultDuration time.Duration
	capacity        int
	now             func() time.Time
	afterFunc       func(time.Duration, func()) *time.Timer
}

// Option configura un Notifier.
type Option func(*Notifier)

// WithDefaultDuration cambia el auto-cierre por defecto.
func WithDefaultDuration(d time.Duration) Option {
	return func(n *Notifier) { n.defaultDuration = d }
}

// WithCapacity limita las notificaciones visibles; al superarlo se retira la más antigua.
// 0 = sin límite.
func WithCapacity(max int) Option {
	return func(n *Notifier) { n.capacity = max }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

// New construye el servicio.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		timers:          make(map[string]*time.Timer),
		subs:            make(map[int]Subscriber),
		defaultDuration: DefaultDuration,
		now:             time.Now,
		afterFunc:       time.AfterFunc,
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Notify encola una notificación con la duración por defecto.
func (n *Notifier) Notify(message string, severity Severity) Notification {
	return n.NotifyFor(message, severity, n.defaultDuration)
}

// NotifyFor encola una notificación; duration <= 0 la deja fija hasta Dismiss.
func (n *Notifier) NotifyFor(message string, severity Severity, duration time.Duration) Notification {
	note := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		Duration:  duration,
		CreatedAt: n.now(),
	}

	n.mu.Lock()
	n.active = append(n.active, note)
	if duration > 0 {
		id := note.ID
		n.timers[id] = n.afterFunc(duration, func() { n.Dismiss(id) })
	}
	var evicted []Notification
	for n.capacity > 0 && len(n.active) > n.capacity {
		old := n.active[0]
		n.active = n.active[1:]
		if t, ok := n.timers[old.ID]; ok {
			t.Stop()
			delete(n.timers, old.ID)
		}
		evicted = append(evicted, old)
	}
	subs := n.snapshotSubs()
	n.mu.Unlock()

	for _, s := range subs {
		s.OnNotification(Event{Type: Added, Notification: note})
		for _, old := range evicted {
			s.OnNotification(Event{Type: Dismissed, Notification: old})
		}
	}
	return note
}

// Dismiss retira una notificación antes de tiempo. Devuelve false si ya no estaba activa.
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()
	idx := -1
	for i, a := range n.active {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		n.mu.Unlock()
		return false
	}
	note := n.active[idx]
	n.active = append(n.active[:idx:idx], n.active[idx+1:]...)
	if t, ok := n.timers[id]; ok {
		t.Stop()
		delete(n.timers, id)
	}
	subs := n.snapshotSubs()
	n.mu.Unlock()

	for _, s := range subs {
		s.OnNotification(Event{Type: Dismissed, Notification: note})
	}
	return true
}

// Active copia de las notificaciones visibles en orden de inserción.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.active))
	copy(out, n.active)
	return out
}

// Subscribe registra un observador; la función devuelta lo da de baja.
func (n *Notifier) Subscribe(s Subscriber) (unsubscribe func()) {
	n.mu.Lock()
	id := n.nextSub
	n.nextSub++
	n.subs[id] = s
	n.mu.Unlock()
	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

// Close detiene los temporizadores pendientes y vacía el canal (fin de sesión).
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
	n.active = nil
}

// snapshotSubs requiere n.mu tomado; los suscriptores se invocan fuera del lock.
func (n *Notifier) snapshotSubs() []Subscriber {
	keys := make([]int, 0, len(n.subs))
	for k := range n.subs {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]Subscriber, 0, len(keys))
	for _, k := range keys {
		out = append(out, n.subs[k])
	}
	return out
}
