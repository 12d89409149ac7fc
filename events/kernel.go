package events

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrHandlerPanic wraps the value recovered from a panicking handler.
var ErrHandlerPanic = errors.New("event handler panicked")

// Handler processes one event. Returned errors are logged; they do not stop
// dispatch.
type Handler func(e Event) error

// Token identifies one registration.
type Token uint64

type registration struct {
	token    Token
	owner    string
	priority Priority
	handler  Handler
}

// table is an immutable snapshot of every registration, keyed by the
// dynamic event type. Each list is sorted by priority, then registration
// order. A published table and its lists are never written again.
type table map[reflect.Type][]registration

// Kernel is a registry of event handlers and the dispatcher that calls them.
type Kernel struct {
	mu     sync.Mutex // serializes writers
	next   Token
	tbl    atomic.Pointer[table]
	logger logrus.FieldLogger
	stats  *Metrics
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithLogger sets the logger used for handler faults and registry changes.
// Default: logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(k *Kernel) {
		if l != nil {
			k.logger = l
		}
	}
}

// WithMetrics sets the collectors updated on every dispatch.
func WithMetrics(m *Metrics) Option {
	return func(k *Kernel) {
		k.stats = m
	}
}

// NewKernel returns an empty Kernel.
func NewKernel(opts ...Option) *Kernel {
	k := &Kernel{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(k)
	}
	empty := table{}
	k.tbl.Store(&empty)
	return k
}

// On registers a typed handler for the event kind E, which must be the
// concrete type passed to Raise (usually a pointer to a struct).
func On[E Event](k *Kernel, owner string, priority Priority, handler func(E) error) Token {
	if handler == nil {
		panic("events: nil handler")
	}
	return k.Register(reflect.TypeFor[E](), owner, priority, func(e Event) error {
		return handler(e.(E))
	})
}

// Register adds handler for events whose dynamic type is eventType.
// A nil or interface eventType, a nil handler or an undeclared priority is
// a programming error and panics.
func (k *Kernel) Register(eventType reflect.Type, owner string, priority Priority, handler Handler) Token {
	if eventType == nil || eventType.Kind() == reflect.Interface || !eventType.Implements(eventInterface) {
		panic(fmt.Sprintf("events: invalid event type %v", eventType))
	}
	if handler == nil {
		panic("events: nil handler")
	}
	if !priority.Valid() {
		panic(fmt.Sprintf("events: invalid priority %d", int(priority)))
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.next++
	reg := registration{token: k.next, owner: owner, priority: priority, handler: handler}

	old := *k.tbl.Load()
	list := old[eventType]
	// Insert after every registration of the same or an earlier priority.
	i := sort.Search(len(list), func(i int) bool { return list[i].priority > priority })
	updated := make([]registration, 0, len(list)+1)
	updated = append(updated, list[:i]...)
	updated = append(updated, reg)
	updated = append(updated, list[i:]...)

	next := old.clone()
	next[eventType] = updated
	k.tbl.Store(&next)

	k.logger.WithFields(logrus.Fields{
		"function": "Register",
		"event":    eventType.String(),
		"owner":    owner,
		"priority": priority.String(),
		"token":    reg.token,
	}).Debug("Registered event handler")

	return reg.token
}

var eventInterface = reflect.TypeFor[Event]()

func (t table) clone() table {
	next := make(table, len(t)+1)
	for typ, list := range t {
		next[typ] = list
	}
	return next
}

// filter publishes a table without the registrations drop matches and
// returns how many were removed. Caller holds k.mu.
func (k *Kernel) filter(drop func(registration) bool) int {
	old := *k.tbl.Load()
	next := make(table, len(old))
	removed := 0
	for typ, list := range old {
		kept := make([]registration, 0, len(list))
		for _, reg := range list {
			if drop(reg) {
				removed++
				continue
			}
			kept = append(kept, reg)
		}
		if len(kept) > 0 {
			next[typ] = kept
		}
	}
	if removed > 0 {
		k.tbl.Store(&next)
	}
	return removed
}

// Deregister removes every registration owned by owner, across all event
// types, and returns how many were removed.
func (k *Kernel) Deregister(owner string) int {
	k.mu.Lock()
	defer k.mu.Unlock()

	removed := k.filter(func(reg registration) bool { return reg.owner == owner })

	k.logger.WithFields(logrus.Fields{
		"function": "Deregister",
		"owner":    owner,
		"removed":  removed,
	}).Debug("Deregistered event handlers")

	return removed
}

// Remove removes the registration identified by token.
func (k *Kernel) Remove(token Token) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.filter(func(reg registration) bool { return reg.token == token }) > 0
}

// Handlers returns the number of handlers registered for eventType.
func (k *Kernel) Handlers(eventType reflect.Type) int {
	return len((*k.tbl.Load())[eventType])
}

// Owners returns the sorted owner tags that have at least one registration.
func (k *Kernel) Owners() []string {
	seen := make(map[string]struct{})
	for _, list := range *k.tbl.Load() {
		for _, reg := range list {
			seen[reg.owner] = struct{}{}
		}
	}
	owners := make([]string, 0, len(seen))
	for o := range seen {
		owners = append(owners, o)
	}
	sort.Strings(owners)
	return owners
}

// Raise invokes every handler registered for the dynamic type of e, in
// priority order, passing each the same e. Handler errors and panics are
// logged and absorbed. Cancellation does not stop dispatch; callers inspect
// e after Raise returns.
func (k *Kernel) Raise(e Event) {
	if e == nil {
		return
	}
	handlers := (*k.tbl.Load())[reflect.TypeOf(e)]
	if len(handlers) == 0 {
		return
	}

	start := time.Now()
	faults := 0
	for _, reg := range handlers {
		if err := k.invoke(reg, e); err != nil {
			faults++
			k.logger.WithFields(logrus.Fields{
				"function": "Raise",
				"event":    e.EventName(),
				"owner":    reg.owner,
				"priority": reg.priority.String(),
				"error":    err.Error(),
			}).Error("Event handler failed")
			k.stats.fault(e.EventName(), reg.owner, err)
		}
	}
	k.stats.raised(e.EventName(), len(handlers), time.Since(start))
}

// invoke calls one handler, converting a panic into an error.
func (k *Kernel) invoke(reg registration, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return reg.handler(e)
}
